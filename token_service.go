package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenPair is the credential set handed out on login and registration.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RevocationStore persists blacklisted refresh token ids. The blacklist
// is durable: a revoked id stays revoked across restarts.
type RevocationStore interface {
	IsRevoked(ctx context.Context, id uuid.UUID) (bool, error)
	Revoke(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
}

// TokenService issues and validates the access/refresh pair.
type TokenService interface {
	IssuePair(member *Member) (TokenPair, error)
	Validate(ctx context.Context, tokenString, expectedType string) (AuthClaims, error)
	Revoke(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   jwt.ClaimStrings
	blacklist  RevocationStore
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string, audience jwt.ClaimStrings, blacklist RevocationStore, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		audience:   audience,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// IssuePair mints an access and a refresh token carrying the same identity
// snapshot. Each token gets its own jti; only the refresh jti is ever
// blacklisted.
func (ts *TokenServiceImpl) IssuePair(member *Member) (TokenPair, error) {
	if member == nil {
		return TokenPair{}, errors.New("member must not be nil", errors.CategoryInternal)
	}

	access, err := ts.SignClaims(ts.newClaims(member, TokenTypeAccess, ts.accessTTL))
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := ts.SignClaims(ts.newClaims(member, TokenTypeRefresh, ts.refreshTTL))
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured
// claims. Failures map to exactly one of ErrTokenExpired,
// ErrTokenMalformed or ErrTokenRevoked. The blacklist is only consulted
// for refresh tokens; access tokens ride out their short expiry.
func (ts *TokenServiceImpl) Validate(ctx context.Context, tokenString, expectedType string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	if expectedType != "" && claims.Type != expectedType {
		return nil, errors.New(
			fmt.Sprintf("token is not a %s token", expectedType),
			ErrTokenMalformed.Category,
		).WithTextCode(ErrTokenMalformed.TextCode).WithCode(errors.CodeUnauthorized)
	}

	if claims.Type == TokenTypeRefresh && ts.blacklist != nil {
		revoked, err := ts.isRevoked(ctx, claims)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Revoke blacklists a refresh token. Expired, malformed or already
// revoked tokens are rejected with their typed error.
func (ts *TokenServiceImpl) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := ts.Validate(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return err
	}

	if ts.blacklist == nil {
		return errors.New("no revocation store configured", errors.CategoryInternal)
	}

	id, err := uuid.Parse(claims.TokenID())
	if err != nil {
		return errors.Wrap(err, ErrTokenMalformed.Category, "token id is not a valid uuid").
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if err := ts.blacklist.Revoke(ctx, id, claims.Expires()); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist token revocation")
	}

	ts.logger.Info("TokenService revoked refresh token", "jti", id.String())

	return nil
}

// Refresh mints a new access token from a live refresh token. The new
// token copies the refresh token's identity snapshot; it does not consult
// the member record.
func (ts *TokenServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ts.Validate(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	now := time.Now()
	access := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   claims.UserID(),
			Audience:  ts.copyAudience(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
		},
		UID:        claims.UserID(),
		UserEmail:  claims.Email(),
		Team:       claims.TeamID(),
		TeamLeader: claims.IsTeamLeader(),
		Type:       TokenTypeAccess,
	}

	ensureTokenID(&access.RegisteredClaims)

	return ts.SignClaims(access)
}

func (ts *TokenServiceImpl) isRevoked(ctx context.Context, claims *JWTClaims) (bool, error) {
	id, err := uuid.Parse(claims.TokenID())
	if err != nil {
		return false, errors.Wrap(err, ErrTokenMalformed.Category, "token id is not a valid uuid").
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	revoked, err := ts.blacklist.IsRevoked(ctx, id)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check token revocation")
	}

	return revoked, nil
}

func (ts *TokenServiceImpl) newClaims(member *Member, tokenType string, ttl time.Duration) *JWTClaims {
	now := time.Now()

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   member.ID.String(),
			Audience:  ts.copyAudience(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:        member.ID.String(),
		UserEmail:  member.Email,
		Team:       member.TeamID.String(),
		TeamLeader: member.TeamLeader,
		Type:       tokenType,
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

func (ts *TokenServiceImpl) copyAudience() jwt.ClaimStrings {
	if len(ts.audience) == 0 {
		return nil
	}
	aud := make(jwt.ClaimStrings, len(ts.audience))
	copy(aud, ts.audience)
	return aud
}
