package roster

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Teams interface {
	GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*Team, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*Team, error)
	Create(ctx context.Context, record *Team, criteria ...repository.InsertCriteria) (*Team, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Team, criteria ...repository.InsertCriteria) (*Team, error)
	Update(ctx context.Context, record *Team, criteria ...repository.UpdateCriteria) (*Team, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type teams struct {
	repository.Repository[*Team]
	db *bun.DB
}

var _ Teams = (*teams)(nil)

func NewTeamsRepository(db *bun.DB) Teams {
	repo := repository.NewRepository[*Team](db, repository.ModelHandlers[*Team]{
		NewRecord: func() *Team { return &Team{} },
		GetID: func(t *Team) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Team, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &teams{
		Repository: repo,
		db:         db,
	}
}

func (a *teams) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*Team, error) {
	record := &Team{}
	q := a.db.NewSelect().Model(record)

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

func (a *teams) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.db.NewSelect().
		Model((*Team)(nil)).
		Where("?TableAlias.id = ?", id).
		Exists(ctx)
}

func (a *teams) List(ctx context.Context) ([]*Team, error) {
	var records []*Team
	err := a.db.NewSelect().
		Model(&records).
		Order("name_en ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *teams) Create(ctx context.Context, record *Team, criteria ...repository.InsertCriteria) (*Team, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *teams) CreateTx(ctx context.Context, tx bun.IDB, record *Team, criteria ...repository.InsertCriteria) (*Team, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *teams) Update(ctx context.Context, record *Team, criteria ...repository.UpdateCriteria) (*Team, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return a.Repository.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *teams) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Team)(nil)).
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
