package roster

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// PublicationController serves the publication CRUD surface. The author
// is always the caller; client supplied author ids are ignored.
type PublicationController struct {
	Logger Logger
	Repo   RepositoryManager
	Authz  *Authorizer
}

func NewPublicationController(repo RepositoryManager, authz *Authorizer) *PublicationController {
	return &PublicationController{
		Logger: defLogger{},
		Repo:   repo,
		Authz:  authz,
	}
}

func (p *PublicationController) WithLogger(logger Logger) *PublicationController {
	if logger != nil {
		p.Logger = logger
	}
	return p
}

// PublicationPayload is the create/update body.
type PublicationPayload struct {
	TitleEN         string `json:"title_en"`
	TitleES         string `json:"title_es"`
	ContentEN       string `json:"content_en"`
	ContentES       string `json:"content_es"`
	PublicationDate string `json:"publication_date"`
	ImageURL        string `json:"image_url"`
	TeamID          string `json:"team_id"`
}

// Validate will run validation rules
func (r PublicationPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TitleEN, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.TitleES, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.PublicationDate, validation.Date("2006-01-02")),
		validation.Field(&r.TeamID, is.UUIDv4),
	)
}

func (p *PublicationController) List(c *fiber.Ctx) error {
	teamID, err := parseUUIDQuery(c, "team")
	if err != nil {
		return RespondError(c, err)
	}

	records, err := p.Repo.Publications().List(c.Context(), teamID)
	if err != nil {
		p.Logger.Error("Publication list error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list publications"))
	}

	lang := c.Query("lang")
	dtos := make([]PublicationDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewPublicationDTO(record, lang))
	}

	return c.JSON(fiber.Map{"publications": dtos})
}

func (p *PublicationController) Show(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := p.Repo.Publications().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"publication": NewPublicationDTO(record, c.Query("lang"))})
}

func (p *PublicationController) Create(c *fiber.Ctx) error {
	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := p.Authz.Decide(claims, ActionCreate, KindPublication, nil); err != nil {
		return RespondError(c, err)
	}

	payload := new(PublicationPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	authorID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(c, ErrTokenMalformed)
	}

	record := &Publication{
		TitleEN:   payload.TitleEN,
		TitleES:   payload.TitleES,
		ContentEN: payload.ContentEN,
		ContentES: payload.ContentES,
		ImageURL:  payload.ImageURL,
		AuthorID:  &authorID,
	}

	if payload.PublicationDate != "" {
		if date, err := time.Parse("2006-01-02", payload.PublicationDate); err == nil {
			record.PublicationDate = &date
		}
	}

	if payload.TeamID != "" {
		teamID, err := uuid.Parse(payload.TeamID)
		if err != nil {
			return RespondError(c, ErrUnknownTeam)
		}
		exists, err := p.Repo.Teams().Exists(c.Context(), teamID)
		if err != nil {
			return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to check team"))
		}
		if !exists {
			return RespondError(c, ErrUnknownTeam)
		}
		record.TeamID = &teamID
	}

	record, err = p.Repo.Publications().Create(c.Context(), record)
	if err != nil {
		p.Logger.Error("Publication create error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "could not create publication"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"publication": NewPublicationDTO(record, c.Query("lang")),
	})
}

func (p *PublicationController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := p.Repo.Publications().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := p.Authz.Decide(claims, ActionUpdate, KindPublication, record); err != nil {
		return RespondError(c, err)
	}

	payload := new(PublicationPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	record.TitleEN = payload.TitleEN
	record.TitleES = payload.TitleES
	record.ContentEN = payload.ContentEN
	record.ContentES = payload.ContentES
	record.ImageURL = payload.ImageURL

	if payload.PublicationDate != "" {
		if date, err := time.Parse("2006-01-02", payload.PublicationDate); err == nil {
			record.PublicationDate = &date
		}
	}

	now := time.Now()
	record.UpdatedAt = &now

	record, err = p.Repo.Publications().Update(c.Context(), record)
	if err != nil {
		p.Logger.Error("Publication update error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "could not update publication"))
	}

	return c.JSON(fiber.Map{"publication": NewPublicationDTO(record, c.Query("lang"))})
}

func (p *PublicationController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := p.Repo.Publications().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := p.Authz.Decide(claims, ActionDelete, KindPublication, record); err != nil {
		return RespondError(c, err)
	}

	if err := p.Repo.Publications().DeleteByID(c.Context(), id); err != nil {
		p.Logger.Error("Publication delete error", "error", err)
		return RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
