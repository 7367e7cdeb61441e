package roster

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// SocialLinkController serves the social link CRUD surface.
type SocialLinkController struct {
	Logger Logger
	Repo   RepositoryManager
	Authz  *Authorizer
}

func NewSocialLinkController(repo RepositoryManager, authz *Authorizer) *SocialLinkController {
	return &SocialLinkController{
		Logger: defLogger{},
		Repo:   repo,
		Authz:  authz,
	}
}

func (s *SocialLinkController) WithLogger(logger Logger) *SocialLinkController {
	if logger != nil {
		s.Logger = logger
	}
	return s
}

// SocialLinkPayload is the create/update body.
type SocialLinkPayload struct {
	Link     string `json:"link"`
	IconURL  string `json:"icon_url"`
	MemberID string `json:"member_id"`
}

// Validate will run validation rules
func (r SocialLinkPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Link, validation.Required, is.URL, validation.Length(1, 300)),
		validation.Field(&r.MemberID, validation.Required, is.UUIDv4),
	)
}

func (s *SocialLinkController) List(c *fiber.Ctx) error {
	memberID, err := parseUUIDQuery(c, "member")
	if err != nil {
		return RespondError(c, err)
	}

	records, err := s.Repo.SocialLinks().List(c.Context(), memberID)
	if err != nil {
		s.Logger.Error("Social link list error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list social links"))
	}

	dtos := make([]SocialLinkDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewSocialLinkDTO(record))
	}

	return c.JSON(fiber.Map{"social_links": dtos})
}

func (s *SocialLinkController) Show(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := s.Repo.SocialLinks().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"social_link": NewSocialLinkDTO(record)})
}

func (s *SocialLinkController) Create(c *fiber.Ctx) error {
	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := s.Authz.Decide(claims, ActionCreate, KindSocialLink, nil); err != nil {
		return RespondError(c, err)
	}

	payload := new(SocialLinkPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	memberID, err := uuid.Parse(payload.MemberID)
	if err != nil {
		return RespondError(c, errors.New("member_id is not a valid uuid", errors.CategoryBadInput))
	}

	if _, err := s.Repo.Members().GetByID(c.Context(), memberID); err != nil {
		return RespondError(c, err)
	}

	record := &SocialLink{
		Link:     payload.Link,
		IconURL:  payload.IconURL,
		MemberID: memberID,
	}

	record, err = s.Repo.SocialLinks().Create(c.Context(), record)
	if err != nil {
		s.Logger.Error("Social link create error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryConflict, "could not create social link"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"social_link": NewSocialLinkDTO(record)})
}

func (s *SocialLinkController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := s.Repo.SocialLinks().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := s.Authz.Decide(claims, ActionUpdate, KindSocialLink, record); err != nil {
		return RespondError(c, err)
	}

	payload := new(SocialLinkPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	memberID, err := uuid.Parse(payload.MemberID)
	if err != nil {
		return RespondError(c, errors.New("member_id is not a valid uuid", errors.CategoryBadInput))
	}

	record.Link = payload.Link
	record.IconURL = payload.IconURL
	record.MemberID = memberID

	record, err = s.Repo.SocialLinks().Update(c.Context(), record)
	if err != nil {
		s.Logger.Error("Social link update error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryConflict, "could not update social link"))
	}

	return c.JSON(fiber.Map{"social_link": NewSocialLinkDTO(record)})
}

func (s *SocialLinkController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := s.Repo.SocialLinks().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := s.Authz.Decide(claims, ActionDelete, KindSocialLink, record); err != nil {
		return RespondError(c, err)
	}

	if err := s.Repo.SocialLinks().DeleteByID(c.Context(), id); err != nil {
		s.Logger.Error("Social link delete error", "error", err)
		return RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
