package roster

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type SocialLinks interface {
	GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*SocialLink, error)
	List(ctx context.Context, memberID *uuid.UUID) ([]*SocialLink, error)
	Create(ctx context.Context, record *SocialLink, criteria ...repository.InsertCriteria) (*SocialLink, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *SocialLink, criteria ...repository.InsertCriteria) (*SocialLink, error)
	Update(ctx context.Context, record *SocialLink, criteria ...repository.UpdateCriteria) (*SocialLink, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type socialLinks struct {
	repository.Repository[*SocialLink]
	db *bun.DB
}

var _ SocialLinks = (*socialLinks)(nil)

func NewSocialLinksRepository(db *bun.DB) SocialLinks {
	repo := repository.NewRepository[*SocialLink](db, repository.ModelHandlers[*SocialLink]{
		NewRecord: func() *SocialLink { return &SocialLink{} },
		GetID: func(s *SocialLink) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *SocialLink, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "link"
		},
	})

	return &socialLinks{
		Repository: repo,
		db:         db,
	}
}

func (a *socialLinks) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*SocialLink, error) {
	record := &SocialLink{}
	q := a.db.NewSelect().Model(record).Relation("Member")

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

func (a *socialLinks) List(ctx context.Context, memberID *uuid.UUID) ([]*SocialLink, error) {
	var records []*SocialLink
	q := a.db.NewSelect().
		Model(&records).
		Relation("Member").
		Order("link ASC")

	if memberID != nil {
		q.Where("?TableAlias.member_id = ?", *memberID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *socialLinks) Create(ctx context.Context, record *SocialLink, criteria ...repository.InsertCriteria) (*SocialLink, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *socialLinks) CreateTx(ctx context.Context, tx bun.IDB, record *SocialLink, criteria ...repository.InsertCriteria) (*SocialLink, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *socialLinks) Update(ctx context.Context, record *SocialLink, criteria ...repository.UpdateCriteria) (*SocialLink, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return a.Repository.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *socialLinks) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*SocialLink)(nil)).
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
