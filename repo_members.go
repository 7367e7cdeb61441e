package roster

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Members interface {
	GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*Member, error)
	GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*Member, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, teamID *uuid.UUID) ([]*Member, error)
	Create(ctx context.Context, record *Member, criteria ...repository.InsertCriteria) (*Member, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Member, criteria ...repository.InsertCriteria) (*Member, error)
	Update(ctx context.Context, record *Member, criteria ...repository.UpdateCriteria) (*Member, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type members struct {
	repository.Repository[*Member]
	db *bun.DB
}

var _ Members = (*members)(nil)

func NewMembersRepository(db *bun.DB) Members {
	repo := repository.NewRepository[*Member](db, repository.ModelHandlers[*Member]{
		NewRecord: func() *Member { return &Member{} },
		GetID: func(m *Member) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *Member, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &members{
		Repository: repo,
		db:         db,
	}
}

func (a *members) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*Member, error) {
	record := &Member{}
	q := a.db.NewSelect().Model(record).Relation("Team")

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (a *members) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*Member, error) {
	record := &Member{}
	q := a.db.NewSelect().Model(record).Relation("Team")

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("lower(?TableAlias.email) = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": NormalizeEmail(email)})
		}
		return nil, err
	}

	return record, nil
}

func (a *members) EmailTaken(ctx context.Context, email string) (bool, error) {
	return a.db.NewSelect().
		Model((*Member)(nil)).
		Where("lower(?TableAlias.email) = ?", NormalizeEmail(email)).
		Exists(ctx)
}

func (a *members) List(ctx context.Context, teamID *uuid.UUID) ([]*Member, error) {
	var records []*Member
	q := a.db.NewSelect().
		Model(&records).
		Relation("Team").
		Order("name ASC")

	if teamID != nil {
		q.Where("?TableAlias.team_id = ?", *teamID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *members) Create(ctx context.Context, record *Member, criteria ...repository.InsertCriteria) (*Member, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *members) CreateTx(ctx context.Context, tx bun.IDB, record *Member, criteria ...repository.InsertCriteria) (*Member, error) {
	prepareMemberDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *members) Update(ctx context.Context, record *Member, criteria ...repository.UpdateCriteria) (*Member, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return a.Repository.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *members) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Member)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return nil
}

func prepareMemberDefaults(record *Member) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
