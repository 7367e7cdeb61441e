// Package jwtware is a fiber middleware that extracts and validates
// bearer tokens, storing the resulting claims in the request locals.
package jwtware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	defaultTokenLookup       = "header:" + fiber.HeaderAuthorization
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")
)

// AuthClaims mirrors the claims interface from the root package so the
// middleware does not create an import cycle.
type AuthClaims interface {
	UserID() string
	Email() string
	TeamID() string
	IsTeamLeader() bool
	TokenType() string
	TokenID() string
}

// TokenValidator validates a raw token of the expected type. It mirrors
// the token service's Validate method.
type TokenValidator interface {
	Validate(ctx context.Context, tokenString, expectedType string) (AuthClaims, error)
}

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// SuccessHandler runs after claims are stored; defaults to Next
	SuccessHandler fiber.Handler
	// ErrorHandler converts extraction/validation failures to a response
	ErrorHandler func(*fiber.Ctx, error) error
	// TokenValidator is required
	TokenValidator TokenValidator
	// ContextKey is the locals key for validated claims
	ContextKey string
	// TokenLookup is a comma separated list of source:name pairs, eg.
	// "header:Authorization,query:token,cookie:token"
	TokenLookup string
	// AuthScheme is the expected header scheme, "Bearer" by default
	AuthScheme string
	// TokenType is the expected token_type claim, "access" by default
	TokenType string
	// Optional lets unauthenticated requests through without claims, so
	// public reads and guarded writes can share one route group
	Optional bool
}

func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg.getExtractors())
		if err != nil || raw == "" {
			if cfg.Optional {
				return c.Next()
			}
			return cfg.ErrorHandler(c, ErrJWTMissingOrMalformed)
		}

		claims, err := cfg.TokenValidator.Validate(c.UserContext(), raw, cfg.TokenType)
		if err != nil {
			if cfg.Optional {
				return c.Next()
			}
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return cfg.SuccessHandler(c)
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			if errors.Is(err, ErrJWTMissingOrMalformed) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": ErrJWTMissingOrMalformed.Error(),
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "claims"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.TokenType == "" {
		cfg.TokenType = "access"
	}

	return cfg
}

func (cfg *Config) getExtractors() []JWTExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

func ExtractRawToken(c *fiber.Ctx, extractors []JWTExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

func GetExtractors(tokenLookup string, authSchemes ...string) []JWTExtractor {
	extractors := make([]JWTExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	// header:Authorization,cookie:jwt,query:auth_token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) < 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, jwtFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, jwtFromQuery(parts[1]))
		case "cookie":
			extractors = append(extractors, jwtFromCookie(parts[1]))
		}
	}

	return extractors
}

type JWTExtractor func(c *fiber.Ctx) (string, error)

// jwtFromHeader returns a function that extracts token from the request header.
func jwtFromHeader(header string, authScheme string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		l := len(authScheme)
		if l == 0 {
			return "", ErrJWTMissingOrMalformed
		}
		authScheme = strings.TrimSpace(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrJWTMissingOrMalformed
	}
}

// jwtFromQuery returns a function that extracts token from the query string.
func jwtFromQuery(param string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}

// jwtFromCookie returns a function that extracts token from the named cookie.
func jwtFromCookie(name string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}
