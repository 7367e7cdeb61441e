package roster_test

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	roster "github.com/goliatone/go-roster"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(member *roster.Member) roster.AuthClaims {
	return &roster.JWTClaims{
		UID:        member.ID.String(),
		UserEmail:  member.Email,
		Team:       member.TeamID.String(),
		TeamLeader: member.TeamLeader,
		Type:       roster.TokenTypeAccess,
	}
}

func TestAuthorizerTeams(t *testing.T) {
	authz := roster.NewAuthorizer()

	teamID := uuid.New()
	leader := claimsFor(&roster.Member{ID: uuid.New(), TeamID: teamID, TeamLeader: true})
	member := claimsFor(&roster.Member{ID: uuid.New(), TeamID: teamID})

	tests := []struct {
		name    string
		claims  roster.AuthClaims
		action  roster.Action
		wantErr error
	}{
		{"anonymous read", nil, roster.ActionRead, nil},
		{"member read", member, roster.ActionRead, nil},
		{"anonymous create", nil, roster.ActionCreate, roster.ErrAuthenticationRequired},
		{"member create", member, roster.ActionCreate, roster.ErrAuthorizationDenied},
		{"leader create", leader, roster.ActionCreate, nil},
		{"member update", member, roster.ActionUpdate, roster.ErrAuthorizationDenied},
		{"leader update", leader, roster.ActionUpdate, nil},
		{"anonymous delete", nil, roster.ActionDelete, roster.ErrAuthenticationRequired},
		{"member delete", member, roster.ActionDelete, roster.ErrAuthorizationDenied},
		{"leader delete", leader, roster.ActionDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Decide(tt.claims, tt.action, roster.KindTeam, &roster.Team{ID: teamID})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizerMembers(t *testing.T) {
	authz := roster.NewAuthorizer()

	teamID := uuid.New()
	otherTeamID := uuid.New()
	target := &roster.Member{ID: uuid.New(), TeamID: teamID}

	self := claimsFor(target)
	sameTeamLeader := claimsFor(&roster.Member{ID: uuid.New(), TeamID: teamID, TeamLeader: true})
	otherTeamLeader := claimsFor(&roster.Member{ID: uuid.New(), TeamID: otherTeamID, TeamLeader: true})
	stranger := claimsFor(&roster.Member{ID: uuid.New(), TeamID: otherTeamID})

	tests := []struct {
		name    string
		claims  roster.AuthClaims
		action  roster.Action
		wantErr error
	}{
		{"anonymous read", nil, roster.ActionRead, nil},
		{"anonymous update", nil, roster.ActionUpdate, roster.ErrAuthenticationRequired},
		{"self update", self, roster.ActionUpdate, nil},
		{"leader updates other member", sameTeamLeader, roster.ActionUpdate, nil},
		{"stranger update", stranger, roster.ActionUpdate, roster.ErrAuthorizationDenied},
		{"anonymous delete", nil, roster.ActionDelete, roster.ErrAuthenticationRequired},
		{"self delete without leader flag", self, roster.ActionDelete, roster.ErrAuthorizationDenied},
		{"same team leader delete", sameTeamLeader, roster.ActionDelete, nil},
		{"other team leader delete", otherTeamLeader, roster.ActionDelete, roster.ErrAuthorizationDenied},
		{"stranger delete", stranger, roster.ActionDelete, roster.ErrAuthorizationDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Decide(tt.claims, tt.action, roster.KindMember, target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("member create has no rule", func(t *testing.T) {
		err := authz.Decide(sameTeamLeader, roster.ActionCreate, roster.KindMember, nil)
		require.Error(t, err)

		var richErr *goerrors.Error
		require.ErrorAs(t, err, &richErr)
		assert.Equal(t, goerrors.CategoryInternal, richErr.Category)
	})

	t.Run("nil resource denies update", func(t *testing.T) {
		err := authz.Decide(self, roster.ActionUpdate, roster.KindMember, nil)
		assert.ErrorIs(t, err, roster.ErrAuthorizationDenied)
	})

	t.Run("wrong resource type denies update", func(t *testing.T) {
		err := authz.Decide(self, roster.ActionUpdate, roster.KindMember, &roster.Team{})
		assert.ErrorIs(t, err, roster.ErrAuthorizationDenied)
	})
}

func TestAuthorizerPublications(t *testing.T) {
	authz := roster.NewAuthorizer()

	teamID := uuid.New()
	otherTeamID := uuid.New()
	authorID := uuid.New()

	pub := &roster.Publication{ID: uuid.New(), AuthorID: &authorID, TeamID: &teamID}
	orphan := &roster.Publication{ID: uuid.New(), TeamID: &teamID}

	author := claimsFor(&roster.Member{ID: authorID, TeamID: otherTeamID})
	sameTeamLeader := claimsFor(&roster.Member{ID: uuid.New(), TeamID: teamID, TeamLeader: true})
	otherTeamLeader := claimsFor(&roster.Member{ID: uuid.New(), TeamID: otherTeamID, TeamLeader: true})
	stranger := claimsFor(&roster.Member{ID: uuid.New(), TeamID: otherTeamID})

	tests := []struct {
		name     string
		claims   roster.AuthClaims
		action   roster.Action
		resource any
		wantErr  error
	}{
		{"anonymous read", nil, roster.ActionRead, pub, nil},
		{"anonymous create", nil, roster.ActionCreate, nil, roster.ErrAuthenticationRequired},
		{"any member create", stranger, roster.ActionCreate, nil, nil},
		{"author update", author, roster.ActionUpdate, pub, nil},
		{"same team leader update", sameTeamLeader, roster.ActionUpdate, pub, nil},
		{"other team leader update", otherTeamLeader, roster.ActionUpdate, pub, roster.ErrAuthorizationDenied},
		{"stranger update", stranger, roster.ActionUpdate, pub, roster.ErrAuthorizationDenied},
		{"author delete", author, roster.ActionDelete, pub, nil},
		{"same team leader delete", sameTeamLeader, roster.ActionDelete, pub, nil},
		{"stranger delete", stranger, roster.ActionDelete, pub, roster.ErrAuthorizationDenied},
		{"orphaned publication still managed by team leader", sameTeamLeader, roster.ActionUpdate, orphan, nil},
		{"orphaned publication denies former author", author, roster.ActionUpdate, orphan, roster.ErrAuthorizationDenied},
		{"nil resource denies update", author, roster.ActionUpdate, nil, roster.ErrAuthorizationDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Decide(tt.claims, tt.action, roster.KindPublication, tt.resource)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizerSocialLinks(t *testing.T) {
	authz := roster.NewAuthorizer()

	member := claimsFor(&roster.Member{ID: uuid.New(), TeamID: uuid.New()})
	link := &roster.SocialLink{ID: uuid.New(), Link: "https://example.com/alice"}

	assert.NoError(t, authz.Decide(nil, roster.ActionRead, roster.KindSocialLink, link))
	assert.ErrorIs(t, authz.Decide(nil, roster.ActionCreate, roster.KindSocialLink, link), roster.ErrAuthenticationRequired)
	assert.NoError(t, authz.Decide(member, roster.ActionCreate, roster.KindSocialLink, link))
	assert.NoError(t, authz.Decide(member, roster.ActionUpdate, roster.KindSocialLink, link))
	assert.NoError(t, authz.Decide(member, roster.ActionDelete, roster.KindSocialLink, link))
}

func TestAuthorizerUnknownKind(t *testing.T) {
	authz := roster.NewAuthorizer()

	err := authz.Decide(nil, roster.ActionRead, roster.ResourceKind("gadget"), nil)
	require.Error(t, err)

	var richErr *goerrors.Error
	require.ErrorAs(t, err, &richErr)
	assert.Equal(t, goerrors.CategoryInternal, richErr.Category)
}

func TestAuthorizerSetRule(t *testing.T) {
	authz := roster.NewAuthorizer()

	authz.SetRule(roster.KindSocialLink, roster.ActionDelete, func(claims roster.AuthClaims, _ any) error {
		return roster.ErrAuthorizationDenied
	})

	member := claimsFor(&roster.Member{ID: uuid.New(), TeamID: uuid.New()})
	err := authz.Decide(member, roster.ActionDelete, roster.KindSocialLink, nil)
	assert.ErrorIs(t, err, roster.ErrAuthorizationDenied)
}

func TestAuthorizerEmptyUserIDIsAnonymous(t *testing.T) {
	authz := roster.NewAuthorizer()

	claims := &roster.JWTClaims{TeamLeader: true}
	err := authz.Decide(claims, roster.ActionCreate, roster.KindTeam, nil)
	assert.ErrorIs(t, err, roster.ErrAuthenticationRequired)
}
