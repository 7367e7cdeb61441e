package roster_test

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/goliatone/go-repository-bun"
	roster "github.com/goliatone/go-roster"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockMembers implements roster.Members
type MockMembers struct {
	mock.Mock
}

func (m *MockMembers) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*roster.Member, error) {
	args := m.Called(ctx, id)
	var rec *roster.Member
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Member)
	}
	return rec, args.Error(1)
}

func (m *MockMembers) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*roster.Member, error) {
	args := m.Called(ctx, email)
	var rec *roster.Member
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Member)
	}
	return rec, args.Error(1)
}

func (m *MockMembers) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembers) List(ctx context.Context, teamID *uuid.UUID) ([]*roster.Member, error) {
	args := m.Called(ctx, teamID)
	var recs []*roster.Member
	if v := args.Get(0); v != nil {
		recs = v.([]*roster.Member)
	}
	return recs, args.Error(1)
}

func (m *MockMembers) Create(ctx context.Context, record *roster.Member, criteria ...repository.InsertCriteria) (*roster.Member, error) {
	args := m.Called(ctx, record)
	var rec *roster.Member
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Member)
	}
	return rec, args.Error(1)
}

func (m *MockMembers) CreateTx(ctx context.Context, tx bun.IDB, record *roster.Member, criteria ...repository.InsertCriteria) (*roster.Member, error) {
	args := m.Called(ctx, tx, record)
	var rec *roster.Member
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Member)
	}
	return rec, args.Error(1)
}

func (m *MockMembers) Update(ctx context.Context, record *roster.Member, criteria ...repository.UpdateCriteria) (*roster.Member, error) {
	args := m.Called(ctx, record)
	var rec *roster.Member
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Member)
	}
	return rec, args.Error(1)
}

func (m *MockMembers) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeams implements roster.Teams
type MockTeams struct {
	mock.Mock
}

func (m *MockTeams) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*roster.Team, error) {
	args := m.Called(ctx, id)
	var rec *roster.Team
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Team)
	}
	return rec, args.Error(1)
}

func (m *MockTeams) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeams) List(ctx context.Context) ([]*roster.Team, error) {
	args := m.Called(ctx)
	var recs []*roster.Team
	if v := args.Get(0); v != nil {
		recs = v.([]*roster.Team)
	}
	return recs, args.Error(1)
}

func (m *MockTeams) Create(ctx context.Context, record *roster.Team, criteria ...repository.InsertCriteria) (*roster.Team, error) {
	args := m.Called(ctx, record)
	var rec *roster.Team
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Team)
	}
	return rec, args.Error(1)
}

func (m *MockTeams) CreateTx(ctx context.Context, tx bun.IDB, record *roster.Team, criteria ...repository.InsertCriteria) (*roster.Team, error) {
	args := m.Called(ctx, tx, record)
	var rec *roster.Team
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Team)
	}
	return rec, args.Error(1)
}

func (m *MockTeams) Update(ctx context.Context, record *roster.Team, criteria ...repository.UpdateCriteria) (*roster.Team, error) {
	args := m.Called(ctx, record)
	var rec *roster.Team
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Team)
	}
	return rec, args.Error(1)
}

func (m *MockTeams) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublications implements roster.Publications
type MockPublications struct {
	mock.Mock
}

func (m *MockPublications) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*roster.Publication, error) {
	args := m.Called(ctx, id)
	var rec *roster.Publication
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Publication)
	}
	return rec, args.Error(1)
}

func (m *MockPublications) List(ctx context.Context, teamID *uuid.UUID) ([]*roster.Publication, error) {
	args := m.Called(ctx, teamID)
	var recs []*roster.Publication
	if v := args.Get(0); v != nil {
		recs = v.([]*roster.Publication)
	}
	return recs, args.Error(1)
}

func (m *MockPublications) Create(ctx context.Context, record *roster.Publication, criteria ...repository.InsertCriteria) (*roster.Publication, error) {
	args := m.Called(ctx, record)
	var rec *roster.Publication
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Publication)
	}
	return rec, args.Error(1)
}

func (m *MockPublications) CreateTx(ctx context.Context, tx bun.IDB, record *roster.Publication, criteria ...repository.InsertCriteria) (*roster.Publication, error) {
	args := m.Called(ctx, tx, record)
	var rec *roster.Publication
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Publication)
	}
	return rec, args.Error(1)
}

func (m *MockPublications) Update(ctx context.Context, record *roster.Publication, criteria ...repository.UpdateCriteria) (*roster.Publication, error) {
	args := m.Called(ctx, record)
	var rec *roster.Publication
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Publication)
	}
	return rec, args.Error(1)
}

func (m *MockPublications) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSocialLinks implements roster.SocialLinks
type MockSocialLinks struct {
	mock.Mock
}

func (m *MockSocialLinks) GetByID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*roster.SocialLink, error) {
	args := m.Called(ctx, id)
	var rec *roster.SocialLink
	if v := args.Get(0); v != nil {
		rec = v.(*roster.SocialLink)
	}
	return rec, args.Error(1)
}

func (m *MockSocialLinks) List(ctx context.Context, memberID *uuid.UUID) ([]*roster.SocialLink, error) {
	args := m.Called(ctx, memberID)
	var recs []*roster.SocialLink
	if v := args.Get(0); v != nil {
		recs = v.([]*roster.SocialLink)
	}
	return recs, args.Error(1)
}

func (m *MockSocialLinks) Create(ctx context.Context, record *roster.SocialLink, criteria ...repository.InsertCriteria) (*roster.SocialLink, error) {
	args := m.Called(ctx, record)
	var rec *roster.SocialLink
	if v := args.Get(0); v != nil {
		rec = v.(*roster.SocialLink)
	}
	return rec, args.Error(1)
}

func (m *MockSocialLinks) CreateTx(ctx context.Context, tx bun.IDB, record *roster.SocialLink, criteria ...repository.InsertCriteria) (*roster.SocialLink, error) {
	args := m.Called(ctx, tx, record)
	var rec *roster.SocialLink
	if v := args.Get(0); v != nil {
		rec = v.(*roster.SocialLink)
	}
	return rec, args.Error(1)
}

func (m *MockSocialLinks) Update(ctx context.Context, record *roster.SocialLink, criteria ...repository.UpdateCriteria) (*roster.SocialLink, error) {
	args := m.Called(ctx, record)
	var rec *roster.SocialLink
	if v := args.Get(0); v != nil {
		rec = v.(*roster.SocialLink)
	}
	return rec, args.Error(1)
}

func (m *MockSocialLinks) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRevokedTokens implements roster.RevokedTokens
type MockRevokedTokens struct {
	mock.Mock
}

func (m *MockRevokedTokens) IsRevoked(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokens) Revoke(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *MockRevokedTokens) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRepoManager implements roster.RepositoryManager. RunInTx invokes
// the callback with a zero transaction so command handlers can be
// exercised without a database.
type MockRepoManager struct {
	mock.Mock
	MembersRepo       *MockMembers
	TeamsRepo         *MockTeams
	PublicationsRepo  *MockPublications
	SocialLinksRepo   *MockSocialLinks
	RevokedTokensRepo *MockRevokedTokens
}

func NewMockRepoManager() *MockRepoManager {
	return &MockRepoManager{
		MembersRepo:       &MockMembers{},
		TeamsRepo:         &MockTeams{},
		PublicationsRepo:  &MockPublications{},
		SocialLinksRepo:   &MockSocialLinks{},
		RevokedTokensRepo: &MockRevokedTokens{},
	}
}

func (m *MockRepoManager) Validate() error { return nil }
func (m *MockRepoManager) MustValidate()   {}

func (m *MockRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepoManager) Teams() roster.Teams                 { return m.TeamsRepo }
func (m *MockRepoManager) Members() roster.Members             { return m.MembersRepo }
func (m *MockRepoManager) Publications() roster.Publications   { return m.PublicationsRepo }
func (m *MockRepoManager) SocialLinks() roster.SocialLinks     { return m.SocialLinksRepo }
func (m *MockRepoManager) RevokedTokens() roster.RevokedTokens { return m.RevokedTokensRepo }

// MockTokenService implements roster.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssuePair(member *roster.Member) (roster.TokenPair, error) {
	args := m.Called(member)
	return args.Get(0).(roster.TokenPair), args.Error(1)
}

func (m *MockTokenService) Validate(ctx context.Context, tokenString, expectedType string) (roster.AuthClaims, error) {
	args := m.Called(ctx, tokenString, expectedType)
	var claims roster.AuthClaims
	if v := args.Get(0); v != nil {
		claims = v.(roster.AuthClaims)
	}
	return claims, args.Error(1)
}

func (m *MockTokenService) Revoke(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockTokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

// MockAuthenticator implements roster.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*roster.Member, roster.TokenPair, error) {
	args := m.Called(ctx, email, password)
	var rec *roster.Member
	if v := args.Get(0); v != nil {
		rec = v.(*roster.Member)
	}
	return rec, args.Get(1).(roster.TokenPair), args.Error(2)
}

// staticGate is a fixed allow list for registration tests.
type staticGate struct {
	allowed map[string]bool
}

func newStaticGate(emails ...string) *staticGate {
	g := &staticGate{allowed: map[string]bool{}}
	for _, email := range emails {
		g.allowed[email] = true
	}
	return g
}

func (g *staticGate) IsAllowed(email string) bool {
	return g.allowed[email]
}

// memRevocations is an in-memory RevocationStore for token tests.
type memRevocations struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time
	err     error
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: map[uuid.UUID]time.Time{}}
}

func (s *memRevocations) IsRevoked(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[id]
	return ok, nil
}

func (s *memRevocations) Revoke(_ context.Context, id uuid.UUID, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[id] = expiresAt
	return nil
}
