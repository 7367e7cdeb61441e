package roster

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Teams() Teams
	Members() Members
	Publications() Publications
	SocialLinks() SocialLinks
	RevokedTokens() RevokedTokens
}

type mngr struct {
	db            *bun.DB
	teams         Teams
	members       Members
	publications  Publications
	socialLinks   SocialLinks
	revokedTokens RevokedTokens
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:            db,
		teams:         NewTeamsRepository(db),
		members:       NewMembersRepository(db),
		publications:  NewPublicationsRepository(db),
		socialLinks:   NewSocialLinksRepository(db),
		revokedTokens: NewRevokedTokensRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.teams == nil {
		return errors.New("repository teams should be initialized")
	}

	if m.members == nil {
		return errors.New("repository members should be initialized")
	}

	if m.publications == nil {
		return errors.New("repository publications should be initialized")
	}

	if m.socialLinks == nil {
		return errors.New("repository socialLinks should be initialized")
	}

	if m.revokedTokens == nil {
		return errors.New("repository revokedTokens should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Teams() Teams {
	return m.teams
}

func (m mngr) Members() Members {
	return m.members
}

func (m mngr) Publications() Publications {
	return m.publications
}

func (m mngr) SocialLinks() SocialLinks {
	return m.socialLinks
}

func (m mngr) RevokedTokens() RevokedTokens {
	return m.revokedTokens
}
