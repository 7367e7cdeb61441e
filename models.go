package roster

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Team groups members and publications. Names are unique per language.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	NameEN        string    `bun:"name_en,notnull,unique" json:"name_en,omitempty"`
	NameES        string    `bun:"name_es,notnull,unique" json:"name_es,omitempty"`
	ImageURL      string    `bun:"image_url" json:"image_url,omitempty"`
}

// Member is both a roster entry and the identity we authenticate.
// Email is stored case folded and is the login identifier.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:mbr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CareerEN      string     `bun:"career_en" json:"career_en,omitempty"`
	CareerES      string     `bun:"career_es" json:"career_es,omitempty"`
	RoleEN        string     `bun:"role_en" json:"role_en,omitempty"`
	RoleES        string     `bun:"role_es" json:"role_es,omitempty"`
	ChargeEN      string     `bun:"charge_en" json:"charge_en,omitempty"`
	ChargeES      string     `bun:"charge_es" json:"charge_es,omitempty"`
	ImageURL      string     `bun:"image_url" json:"image_url,omitempty"`
	TeamLeader    bool       `bun:"is_team_leader" json:"is_team_leader"`
	Active        bool       `bun:"is_active" json:"is_active"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	TeamID        uuid.UUID  `bun:"team_id,notnull,type:uuid" json:"team_id,omitempty"`
	Team          *Team      `bun:"rel:belongs-to,join:team_id=id" json:"team,omitempty"`
}

// SetPassword hashes and stores the password. It does not persist the record.
func (m *Member) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	m.PasswordHash = hash
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
// A mismatch is a false, not an error; an error means the stored hash
// itself could not be processed.
func (m *Member) CheckPassword(password string) (bool, error) {
	err := ComparePasswordAndHash(password, m.PasswordHash)
	if err == nil {
		return true, nil
	}
	if Is(err, ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// NormalizeEmail trims and lowercases an email for storage and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Publication is an article attributed to a member and optionally a team.
// The author reference survives as NULL when the member is deleted.
type Publication struct {
	bun.BaseModel   `bun:"table:publications,alias:pub"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	TitleEN         string     `bun:"title_en,notnull" json:"title_en,omitempty"`
	TitleES         string     `bun:"title_es,notnull" json:"title_es,omitempty"`
	ContentEN       string     `bun:"content_en" json:"content_en,omitempty"`
	ContentES       string     `bun:"content_es" json:"content_es,omitempty"`
	PublicationDate *time.Time `bun:"publication_date,nullzero,default:current_timestamp" json:"publication_date,omitempty"`
	ImageURL        string     `bun:"image_url" json:"image_url,omitempty"`
	AuthorID        *uuid.UUID `bun:"author_id,nullzero,type:uuid" json:"author_id,omitempty"`
	Author          *Member    `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	TeamID          *uuid.UUID `bun:"team_id,nullzero,type:uuid" json:"team_id,omitempty"`
	Team            *Team      `bun:"rel:belongs-to,join:team_id=id" json:"team,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// SocialLink is a member's external profile link, deleted with the member.
type SocialLink struct {
	bun.BaseModel `bun:"table:social_links,alias:sol"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Link          string    `bun:"link,notnull,unique" json:"link,omitempty"`
	IconURL       string    `bun:"icon_url" json:"icon_url,omitempty"`
	MemberID      uuid.UUID `bun:"member_id,notnull,type:uuid" json:"member_id,omitempty"`
	Member        *Member   `bun:"rel:belongs-to,join:member_id=id" json:"member,omitempty"`
}

// RevokedToken is a blacklisted refresh token id. ExpiresAt mirrors the
// token's own expiry so stale rows can be pruned.
type RevokedToken struct {
	bun.BaseModel `bun:"table:token_blacklist,alias:tkb"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id,omitempty"`
	RevokedAt     time.Time `bun:"revoked_at,notnull" json:"revoked_at,omitempty"`
	ExpiresAt     time.Time `bun:"expires_at,notnull" json:"expires_at,omitempty"`
}
