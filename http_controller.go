package roster

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// AuthController serves the authentication endpoints.
type AuthController struct {
	Debug  bool
	Logger Logger
	Repo   RepositoryManager
	Tokens TokenService
	Auth   Authenticator
	Gate   WhitelistGate
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	if c.Auth == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Gate == nil {
		panic("Missing WhitelistGate in auth controller...")
	}

	return c
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithAuthRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithAuthTokens(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithAuthAuthenticator(auth Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auth = auth
		return c
	}
}

func WithAuthGate(gate WhitelistGate) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Gate = gate
		return c
	}
}

func WithAuthDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
	CareerEN string `json:"career_en"`
	CareerES string `json:"career_es"`
	RoleEN   string `json:"role_en"`
	RoleES   string `json:"role_es"`
	ChargeEN string `json:"charge_en"`
	ChargeES string `json:"charge_es"`
	ImageURL string `json:"image_url"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		// bcrypt rejects inputs over 72 bytes, so the cap is 72 not 100
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.TeamID, validation.Required, is.UUIDv4),
	)
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Register parse payload", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	if a.Debug {
		fmt.Println("======= AUTH REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("============================")
	}

	msg := RegisterMemberMessage{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
		TeamID:   payload.TeamID,
		CareerEN: payload.CareerEN,
		CareerES: payload.CareerES,
		RoleEN:   payload.RoleEN,
		RoleES:   payload.RoleES,
		ChargeEN: payload.ChargeEN,
		ChargeES: payload.ChargeES,
		ImageURL: payload.ImageURL,
	}

	handler := NewRegisterMemberHandler(a.Repo, a.Gate)
	member, err := handler.Execute(c.Context(), msg)
	if err != nil {
		a.Logger.Error("Register member error", "error", err)
		return RespondError(c, err)
	}

	tokens, err := a.Tokens.IssuePair(member)
	if err != nil {
		a.Logger.Error("Register token issuance error", "error", err)
		return RespondError(c, err)
	}

	// reload so the response carries the team relation
	if full, err := a.Repo.Members().GetByID(c.Context(), member.ID); err == nil {
		member = full
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"member":  NewMemberDTO(member, c.Query("lang"), true),
		"tokens":  tokens,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Login parse payload", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	member, tokens, err := a.Auth.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"member":  NewMemberDTO(member, c.Query("lang"), true),
		"tokens":  tokens,
	})
}

// RefreshRequest payload, shared by logout and refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Validate will run validation rules
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required),
	)
}

func (a *AuthController) Logout(c *fiber.Ctx) error {
	payload := new(RefreshRequest)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	if err := a.Tokens.Revoke(c.Context(), payload.Refresh); err != nil {
		a.Logger.Info("Logout with unusable refresh token", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid token or token already blacklisted",
		})
	}

	return c.JSON(fiber.Map{"message": "logout successful"})
}

func (a *AuthController) Refresh(c *fiber.Ctx) error {
	payload := new(RefreshRequest)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	access, err := a.Tokens.Refresh(c.Context(), payload.Refresh)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"access": access})
}

func (a *AuthController) Me(c *fiber.Ctx) error {
	claims, ok := ClaimsFromFiber(c, DefaultContextKey)
	if !ok {
		return RespondError(c, ErrAuthenticationRequired)
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(c, ErrTokenMalformed)
	}

	member, err := a.Repo.Members().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"member": NewMemberDTO(member, c.Query("lang"), true),
	})
}

// ChangePasswordRequest payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate will run validation rules
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 72)),
	)
}

func (a *AuthController) ChangePassword(c *fiber.Ctx) error {
	claims, ok := ClaimsFromFiber(c, DefaultContextKey)
	if !ok {
		return RespondError(c, ErrAuthenticationRequired)
	}

	payload := new(ChangePasswordRequest)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, err)
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(c, ErrTokenMalformed)
	}

	member, err := a.Repo.Members().GetByID(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	ok, err = member.CheckPassword(payload.OldPassword)
	if err != nil {
		a.Logger.Error("ChangePassword stored credential error", "member", member.ID.String(), "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to verify credentials"))
	}

	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "old password is incorrect",
		})
	}

	if err := member.SetPassword(payload.NewPassword); err != nil {
		return RespondError(c, err)
	}

	if _, err := a.Repo.Members().Update(c.Context(), member); err != nil {
		a.Logger.Error("ChangePassword update error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to update password"))
	}

	return c.JSON(fiber.Map{"message": "password changed successfully"})
}

func (a *AuthController) CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email query parameter is required",
		})
	}

	email = NormalizeEmail(email)
	allowed := a.Gate.IsAllowed(email)

	taken, err := a.Repo.Members().EmailTaken(c.Context(), email)
	if err != nil {
		a.Logger.Error("CheckEmail lookup error", "error", err)
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to check email"))
	}

	return c.JSON(fiber.Map{
		"email":        email,
		"is_allowed":   allowed,
		"is_taken":     taken,
		"can_register": allowed && !taken,
	})
}
