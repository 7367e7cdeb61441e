package roster

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the token_type claim. Endpoints accept exactly
// one of them; a refresh token never authenticates a request and an
// access token never mints new tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AuthClaims is the identity snapshot the rest of the system reasons
// about. Values reflect the member at issuance time; a member whose team
// or leader flag changes keeps the old authority until tokens rotate.
type AuthClaims interface {
	UserID() string
	Email() string
	TeamID() string
	IsTeamLeader() bool
	TokenType() string
	TokenID() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID        string `json:"user_id,omitempty"`
	UserEmail  string `json:"email,omitempty"`
	Team       string `json:"team_id,omitempty"`
	TeamLeader bool   `json:"is_team_leader"`
	Type       string `json:"token_type,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// UserID returns the member id
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Email returns the member email
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// TeamID returns the member's team at issuance
func (c *JWTClaims) TeamID() string {
	return c.Team
}

// IsTeamLeader returns the leader flag at issuance
func (c *JWTClaims) IsTeamLeader() bool {
	return c.TeamLeader
}

// TokenType returns "access" or "refresh"
func (c *JWTClaims) TokenType() string {
	return c.Type
}

// TokenID returns the jti claim
func (c *JWTClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
