package roster

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// MemberController serves the member CRUD surface. There is no create
// handler; members enter through registration.
type MemberController struct {
	Logger Logger
	Repo   RepositoryManager
	Authz  *Authorizer
}

func NewMemberController(repo RepositoryManager, authz *Authorizer) *MemberController {
	return &MemberController{
		Logger: defLogger{},
		Repo:   repo,
		Authz:  authz,
	}
}

func (m *MemberController) WithLogger(logger Logger) *MemberController {
	if logger != nil {
		m.Logger = logger
	}
	return m
}

// MemberUpdatePayload replaces the profile fields. Email, password, team
// and the leader flag are not editable here.
type MemberUpdatePayload struct {
	Name     string `json:"name"`
	CareerEN string `json:"career_en"`
	CareerES string `json:"career_es"`
	RoleEN   string `json:"role_en"`
	RoleES   string `json:"role_es"`
	ChargeEN string `json:"charge_en"`
	ChargeES string `json:"charge_es"`
	ImageURL string `json:"image_url"`
}

// Validate will run validation rules
func (r MemberUpdatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
	)
}

func (m *MemberController) List(c *fiber.Ctx) error {
	teamID, err := parseUUIDQuery(c, "team")
	if err != nil {
		return RespondError(c, err)
	}

	records, err := m.Repo.Members().List(c.Context(), teamID)
	if err != nil {
		m.Logger.Error("Member list error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list members"))
	}

	lang := c.Query("lang")
	dtos := make([]MemberDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewMemberDTO(record, lang, false))
	}

	return c.JSON(fiber.Map{"members": dtos})
}

func (m *MemberController) Show(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := m.Repo.Members().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	// the email stays private unless the member is looking at themselves
	includeEmail := false
	if claims, ok := ClaimsFromFiber(c, DefaultContextKey); ok {
		includeEmail = claims.UserID() == record.ID.String()
	}

	return c.JSON(fiber.Map{"member": NewMemberDTO(record, c.Query("lang"), includeEmail)})
}

// SocialLinks lists one member's links.
func (m *MemberController) SocialLinks(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	if _, err := m.Repo.Members().GetByID(c.Context(), id); err != nil {
		return RespondError(c, err)
	}

	records, err := m.Repo.SocialLinks().List(c.Context(), &id)
	if err != nil {
		m.Logger.Error("Member social links error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list social links"))
	}

	dtos := make([]SocialLinkDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewSocialLinkDTO(record))
	}

	return c.JSON(fiber.Map{"social_links": dtos})
}

func (m *MemberController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := m.Repo.Members().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := m.Authz.Decide(claims, ActionUpdate, KindMember, record); err != nil {
		return RespondError(c, err)
	}

	payload := new(MemberUpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	record.Name = payload.Name
	record.CareerEN = payload.CareerEN
	record.CareerES = payload.CareerES
	record.RoleEN = payload.RoleEN
	record.RoleES = payload.RoleES
	record.ChargeEN = payload.ChargeEN
	record.ChargeES = payload.ChargeES
	record.ImageURL = payload.ImageURL

	record, err = m.Repo.Members().Update(c.Context(), record)
	if err != nil {
		m.Logger.Error("Member update error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "could not update member"))
	}

	includeEmail := claims != nil && claims.UserID() == record.ID.String()

	return c.JSON(fiber.Map{"member": NewMemberDTO(record, c.Query("lang"), includeEmail)})
}

func (m *MemberController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := m.Repo.Members().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := m.Authz.Decide(claims, ActionDelete, KindMember, record); err != nil {
		return RespondError(c, err)
	}

	if err := m.Repo.Members().DeleteByID(c.Context(), id); err != nil {
		m.Logger.Error("Member delete error", "error", err)
		return RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
