package roster

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// TeamController serves the team CRUD surface. Reads are public; writes
// go through the authorizer.
type TeamController struct {
	Logger Logger
	Repo   RepositoryManager
	Authz  *Authorizer
}

func NewTeamController(repo RepositoryManager, authz *Authorizer) *TeamController {
	return &TeamController{
		Logger: defLogger{},
		Repo:   repo,
		Authz:  authz,
	}
}

func (t *TeamController) WithLogger(logger Logger) *TeamController {
	if logger != nil {
		t.Logger = logger
	}
	return t
}

// TeamPayload is the create/update body.
type TeamPayload struct {
	NameEN   string `json:"name_en"`
	NameES   string `json:"name_es"`
	ImageURL string `json:"image_url"`
}

// Validate will run validation rules
func (r TeamPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NameEN, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.NameES, validation.Required, validation.Length(1, 100)),
	)
}

func (t *TeamController) List(c *fiber.Ctx) error {
	records, err := t.Repo.Teams().List(c.Context())
	if err != nil {
		t.Logger.Error("Team list error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list teams"))
	}

	dtos := make([]TeamDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewTeamDTO(record))
	}

	return c.JSON(fiber.Map{"teams": dtos})
}

func (t *TeamController) Show(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := t.Repo.Teams().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"team": NewTeamDTO(record)})
}

// Members lists the roster of one team.
func (t *TeamController) Members(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	if _, err := t.Repo.Teams().GetByID(c.Context(), id); err != nil {
		return RespondError(c, err)
	}

	records, err := t.Repo.Members().List(c.Context(), &id)
	if err != nil {
		t.Logger.Error("Team members list error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list team members"))
	}

	lang := c.Query("lang")
	dtos := make([]MemberDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NewMemberDTO(record, lang, false))
	}

	return c.JSON(fiber.Map{"members": dtos})
}

func (t *TeamController) Create(c *fiber.Ctx) error {
	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := t.Authz.Decide(claims, ActionCreate, KindTeam, nil); err != nil {
		return RespondError(c, err)
	}

	payload := new(TeamPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	record := &Team{
		NameEN:   payload.NameEN,
		NameES:   payload.NameES,
		ImageURL: payload.ImageURL,
	}

	record, err := t.Repo.Teams().Create(c.Context(), record)
	if err != nil {
		t.Logger.Error("Team create error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryConflict, "could not create team"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"team": NewTeamDTO(record)})
}

func (t *TeamController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := t.Repo.Teams().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := t.Authz.Decide(claims, ActionUpdate, KindTeam, record); err != nil {
		return RespondError(c, err)
	}

	payload := new(TeamPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	record.NameEN = payload.NameEN
	record.NameES = payload.NameES
	record.ImageURL = payload.ImageURL

	record, err = t.Repo.Teams().Update(c.Context(), record)
	if err != nil {
		t.Logger.Error("Team update error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryConflict, "could not update team"))
	}

	return c.JSON(fiber.Map{"team": NewTeamDTO(record)})
}

func (t *TeamController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := t.Repo.Teams().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	claims, _ := ClaimsFromFiber(c, DefaultContextKey)
	if err := t.Authz.Decide(claims, ActionDelete, KindTeam, record); err != nil {
		return RespondError(c, err)
	}

	if err := t.Repo.Teams().DeleteByID(c.Context(), id); err != nil {
		t.Logger.Error("Team delete error", "error", err)
		return RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
