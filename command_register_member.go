package roster

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type RegisterMemberMessage struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	TeamID    string `json:"team_id"`
	CareerEN  string `json:"career_en"`
	CareerES  string `json:"career_es"`
	RoleEN    string `json:"role_en"`
	RoleES    string `json:"role_es"`
	ChargeEN  string `json:"charge_en"`
	ChargeES  string `json:"charge_es"`
	ImageURL  string `json:"image_url"`
	UseHashid bool
}

func (e RegisterMemberMessage) Type() string { return "member.register" }

// RegisterMemberHandler runs the whitelist gated registration flow.
type RegisterMemberHandler struct {
	repo RepositoryManager
	gate WhitelistGate
}

func NewRegisterMemberHandler(repo RepositoryManager, gate WhitelistGate) *RegisterMemberHandler {
	return &RegisterMemberHandler{
		repo: repo,
		gate: gate,
	}
}

func (h *RegisterMemberHandler) Execute(ctx context.Context, event RegisterMemberMessage) (*Member, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during member registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterMemberHandler) execute(ctx context.Context, event RegisterMemberMessage) (*Member, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	email := NormalizeEmail(event.Email)

	if h.gate == nil || !h.gate.IsAllowed(email) {
		return nil, ErrEmailNotAllowed
	}

	taken, err := h.repo.Members().EmailTaken(ctx, email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email availability")
	}
	if taken {
		return nil, ErrEmailTaken
	}

	teamID, err := uuid.Parse(event.TeamID)
	if err != nil {
		return nil, ErrUnknownTeam
	}

	exists, err := h.repo.Teams().Exists(ctx, teamID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check team")
	}
	if !exists {
		return nil, ErrUnknownTeam
	}

	member := &Member{}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		member.PasswordHash = hash
		member.Email = email
		member.Name = event.Name
		member.TeamID = teamID
		member.CareerEN = event.CareerEN
		member.CareerES = event.CareerES
		member.RoleEN = event.RoleEN
		member.RoleES = event.RoleES
		member.ChargeEN = event.ChargeEN
		member.ChargeES = event.ChargeES
		member.ImageURL = event.ImageURL
		member.Active = true
		if event.UseHashid {
			if id, err := hashid.NewUUID(email); err == nil {
				member.ID = id
			}
		}

		if member, err = h.repo.Members().CreateTx(ctx, tx, member); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create member")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "member registration transaction failed")
	}

	return member, nil
}
