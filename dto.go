package roster

import "time"

// Supported response languages. Anything else falls back to English.
const (
	LangEN = "en"
	LangES = "es"
)

func langOrDefault(lang string) string {
	if lang == LangES {
		return LangES
	}
	return LangEN
}

func pickLang(lang, en, es string) string {
	if lang == LangES {
		return es
	}
	return en
}

// TeamDTO carries both names; the public site renders either language.
type TeamDTO struct {
	ID       string `json:"id"`
	NameEN   string `json:"name_en"`
	NameES   string `json:"name_es"`
	ImageURL string `json:"image_url,omitempty"`
}

func NewTeamDTO(t *Team) TeamDTO {
	return TeamDTO{
		ID:       t.ID.String(),
		NameEN:   t.NameEN,
		NameES:   t.NameES,
		ImageURL: t.ImageURL,
	}
}

// MemberDTO shapes the bilingual fields to one language. Email only
// appears in authenticated self views.
type MemberDTO struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Career       string     `json:"career,omitempty"`
	Role         string     `json:"role,omitempty"`
	Charge       string     `json:"charge,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	IsTeamLeader bool       `json:"is_team_leader"`
	TeamID       string     `json:"team_id,omitempty"`
	TeamName     string     `json:"team_name,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func NewMemberDTO(m *Member, lang string, includeEmail bool) MemberDTO {
	lang = langOrDefault(lang)

	dto := MemberDTO{
		ID:           m.ID.String(),
		Name:         m.Name,
		Career:       pickLang(lang, m.CareerEN, m.CareerES),
		Role:         pickLang(lang, m.RoleEN, m.RoleES),
		Charge:       pickLang(lang, m.ChargeEN, m.ChargeES),
		ImageURL:     m.ImageURL,
		IsTeamLeader: m.TeamLeader,
		TeamID:       m.TeamID.String(),
		CreatedAt:    m.CreatedAt,
	}

	if includeEmail {
		dto.Email = m.Email
	}

	if m.Team != nil {
		dto.TeamName = pickLang(lang, m.Team.NameEN, m.Team.NameES)
	}

	return dto
}

// PublicationDTO shapes title/content to one language. AuthorID is a
// pointer so an ownerless publication serializes as null, not "".
type PublicationDTO struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	AuthorID        *string    `json:"author_id"`
	AuthorName      string     `json:"author_name,omitempty"`
	TeamID          *string    `json:"team_id"`
	TeamName        string     `json:"team_name,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func NewPublicationDTO(p *Publication, lang string) PublicationDTO {
	lang = langOrDefault(lang)

	dto := PublicationDTO{
		ID:              p.ID.String(),
		Title:           pickLang(lang, p.TitleEN, p.TitleES),
		Content:         pickLang(lang, p.ContentEN, p.ContentES),
		PublicationDate: p.PublicationDate,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	if p.AuthorID != nil {
		id := p.AuthorID.String()
		dto.AuthorID = &id
	}

	if p.Author != nil {
		dto.AuthorName = p.Author.Name
	}

	if p.TeamID != nil {
		id := p.TeamID.String()
		dto.TeamID = &id
	}

	if p.Team != nil {
		dto.TeamName = pickLang(lang, p.Team.NameEN, p.Team.NameES)
	}

	return dto
}

type SocialLinkDTO struct {
	ID         string `json:"id"`
	Link       string `json:"link"`
	IconURL    string `json:"icon_url,omitempty"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
}

func NewSocialLinkDTO(s *SocialLink) SocialLinkDTO {
	dto := SocialLinkDTO{
		ID:       s.ID.String(),
		Link:     s.Link,
		IconURL:  s.IconURL,
		MemberID: s.MemberID.String(),
	}

	if s.Member != nil {
		dto.MemberName = s.Member.Name
	}

	return dto
}
