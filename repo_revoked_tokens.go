package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RevokedTokens is the refresh token blacklist. It satisfies
// RevocationStore for the token service.
type RevokedTokens interface {
	IsRevoked(ctx context.Context, id uuid.UUID) (bool, error)
	Revoke(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type revokedTokens struct {
	db *bun.DB
}

var (
	_ RevokedTokens   = (*revokedTokens)(nil)
	_ RevocationStore = (*revokedTokens)(nil)
)

func NewRevokedTokensRepository(db *bun.DB) RevokedTokens {
	return &revokedTokens{db: db}
}

func (r *revokedTokens) IsRevoked(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.db.NewSelect().
		Model((*RevokedToken)(nil)).
		Where("?TableAlias.id = ?", id).
		Exists(ctx)
}

func (r *revokedTokens) Revoke(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	record := &RevokedToken{
		ID:        id,
		RevokedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)

	return err
}

// DeleteExpired prunes entries whose token would have expired anyway.
func (r *revokedTokens) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*RevokedToken)(nil)).
		Where("?TableAlias.expires_at < ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
