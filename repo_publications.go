package roster

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Publications interface {
	GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*Publication, error)
	List(ctx context.Context, teamID *uuid.UUID) ([]*Publication, error)
	Create(ctx context.Context, record *Publication, criteria ...repository.InsertCriteria) (*Publication, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Publication, criteria ...repository.InsertCriteria) (*Publication, error)
	Update(ctx context.Context, record *Publication, criteria ...repository.UpdateCriteria) (*Publication, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type publications struct {
	repository.Repository[*Publication]
	db *bun.DB
}

var _ Publications = (*publications)(nil)

func NewPublicationsRepository(db *bun.DB) Publications {
	repo := repository.NewRepository[*Publication](db, repository.ModelHandlers[*Publication]{
		NewRecord: func() *Publication { return &Publication{} },
		GetID: func(p *Publication) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Publication, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &publications{
		Repository: repo,
		db:         db,
	}
}

func (a *publications) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*Publication, error) {
	record := &Publication{}
	q := a.db.NewSelect().
		Model(record).
		Relation("Author").
		Relation("Team")

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

func (a *publications) List(ctx context.Context, teamID *uuid.UUID) ([]*Publication, error) {
	var records []*Publication
	q := a.db.NewSelect().
		Model(&records).
		Relation("Author").
		Relation("Team").
		Order("publication_date DESC")

	if teamID != nil {
		q.Where("?TableAlias.team_id = ?", *teamID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *publications) Create(ctx context.Context, record *Publication, criteria ...repository.InsertCriteria) (*Publication, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *publications) CreateTx(ctx context.Context, tx bun.IDB, record *Publication, criteria ...repository.InsertCriteria) (*Publication, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *publications) Update(ctx context.Context, record *Publication, criteria ...repository.UpdateCriteria) (*Publication, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return a.Repository.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *publications) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Publication)(nil)).
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
