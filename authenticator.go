package roster

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Auther verifies member credentials and mints token pairs.
type Auther struct {
	members Members
	tokens  TokenService
	logger  Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(members Members, tokens TokenService) *Auther {
	return &Auther{
		members: members,
		tokens:  tokens,
		logger:  defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Login verifies the email/password pair and returns the member with a
// fresh token pair. Unknown emails and wrong passwords both collapse to
// ErrInvalidCredentials; inactive accounts with correct credentials get
// ErrInactiveAccount.
func (s *Auther) Login(ctx context.Context, email, password string) (*Member, TokenPair, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.logger.Info("Login attempt for unknown email", "email", NormalizeEmail(email))
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		s.logger.Error("Login member lookup error", "error", err)
		return nil, TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "failed to look up member")
	}

	ok, err := member.CheckPassword(password)
	if err != nil {
		s.logger.Error("Login stored credential error", "member", member.ID.String(), "error", err)
		return nil, TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "failed to verify credentials")
	}

	if !ok {
		s.logger.Info("Login attempt with wrong password", "member", member.ID.String())
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	if !member.Active {
		s.logger.Warn("Login blocked for inactive account", "member", member.ID.String())
		return nil, TokenPair{}, ErrInactiveAccount
	}

	pair, err := s.tokens.IssuePair(member)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return nil, TokenPair{}, err
	}

	return member, pair, nil
}
