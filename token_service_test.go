package roster_test

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	roster "github.com/goliatone/go-roster"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key-for-roster")

func newTestMember() *roster.Member {
	return &roster.Member{
		ID:         uuid.New(),
		Name:       "Alice Example",
		Email:      "alice@example.com",
		TeamID:     uuid.New(),
		TeamLeader: true,
		Active:     true,
	}
}

func newTestTokenService(blacklist roster.RevocationStore) *roster.TokenServiceImpl {
	return roster.NewTokenService(
		testSigningKey,
		15*time.Minute,
		24*time.Hour,
		"go-roster-test",
		nil,
		blacklist,
		nil,
	)
}

func assertTextCode(t *testing.T, err error, textCode string) {
	t.Helper()
	var richErr *goerrors.Error
	require.ErrorAs(t, err, &richErr)
	assert.Equal(t, textCode, richErr.TextCode)
}

func TestIssuePair(t *testing.T) {
	ctx := context.Background()
	member := newTestMember()
	svc := newTestTokenService(newMemRevocations())

	pair, err := svc.IssuePair(member)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	t.Run("access token carries the identity snapshot", func(t *testing.T) {
		claims, err := svc.Validate(ctx, pair.Access, roster.TokenTypeAccess)
		require.NoError(t, err)

		assert.Equal(t, member.ID.String(), claims.UserID())
		assert.Equal(t, member.Email, claims.Email())
		assert.Equal(t, member.TeamID.String(), claims.TeamID())
		assert.True(t, claims.IsTeamLeader())
		assert.Equal(t, roster.TokenTypeAccess, claims.TokenType())
		assert.NotEmpty(t, claims.TokenID())
	})

	t.Run("refresh token carries the same snapshot with its own jti", func(t *testing.T) {
		access, err := svc.Validate(ctx, pair.Access, roster.TokenTypeAccess)
		require.NoError(t, err)

		refresh, err := svc.Validate(ctx, pair.Refresh, roster.TokenTypeRefresh)
		require.NoError(t, err)

		assert.Equal(t, access.UserID(), refresh.UserID())
		assert.Equal(t, roster.TokenTypeRefresh, refresh.TokenType())
		assert.NotEqual(t, access.TokenID(), refresh.TokenID())
		assert.True(t, refresh.Expires().After(access.Expires()))
	})

	t.Run("nil member rejected", func(t *testing.T) {
		_, err := svc.IssuePair(nil)
		assert.Error(t, err)
	})
}

func TestValidateTokenType(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newMemRevocations())

	pair, err := svc.IssuePair(newTestMember())
	require.NoError(t, err)

	t.Run("access token rejected where refresh expected", func(t *testing.T) {
		_, err := svc.Validate(ctx, pair.Access, roster.TokenTypeRefresh)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})

	t.Run("refresh token rejected where access expected", func(t *testing.T) {
		_, err := svc.Validate(ctx, pair.Refresh, roster.TokenTypeAccess)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})
}

func TestValidateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newMemRevocations())

	pair, err := svc.IssuePair(newTestMember())
	require.NoError(t, err)

	t.Run("garbage string", func(t *testing.T) {
		_, err := svc.Validate(ctx, "not.a.token", roster.TokenTypeAccess)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := pair.Access[:len(pair.Access)-2] + "xx"
		_, err := svc.Validate(ctx, tampered, roster.TokenTypeAccess)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := roster.NewTokenService([]byte("another-key"), time.Minute, time.Hour, "go-roster-test", nil, nil, nil)
		otherPair, err := other.IssuePair(newTestMember())
		require.NoError(t, err)

		_, err = svc.Validate(ctx, otherPair.Access, roster.TokenTypeAccess)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := roster.NewTokenService(testSigningKey, time.Minute, time.Hour, "someone-else", nil, nil, nil)
		otherPair, err := other.IssuePair(newTestMember())
		require.NoError(t, err)

		_, err = svc.Validate(ctx, otherPair.Access, roster.TokenTypeAccess)
		require.Error(t, err)
	})
}

func TestValidateExpired(t *testing.T) {
	ctx := context.Background()

	expired := roster.NewTokenService(testSigningKey, -time.Minute, -time.Minute, "go-roster-test", nil, nil, nil)
	pair, err := expired.IssuePair(newTestMember())
	require.NoError(t, err)

	svc := newTestTokenService(newMemRevocations())

	_, err = svc.Validate(ctx, pair.Access, roster.TokenTypeAccess)
	assert.ErrorIs(t, err, roster.ErrTokenExpired)

	_, err = svc.Validate(ctx, pair.Refresh, roster.TokenTypeRefresh)
	assert.ErrorIs(t, err, roster.ErrTokenExpired)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	store := newMemRevocations()
	svc := newTestTokenService(store)

	pair, err := svc.IssuePair(newTestMember())
	require.NoError(t, err)

	t.Run("revoked refresh token stops validating", func(t *testing.T) {
		require.NoError(t, svc.Revoke(ctx, pair.Refresh))

		_, err := svc.Validate(ctx, pair.Refresh, roster.TokenTypeRefresh)
		assert.ErrorIs(t, err, roster.ErrTokenRevoked)
	})

	t.Run("double revoke rejected", func(t *testing.T) {
		err := svc.Revoke(ctx, pair.Refresh)
		assert.ErrorIs(t, err, roster.ErrTokenRevoked)
	})

	t.Run("access token cannot be revoked", func(t *testing.T) {
		err := svc.Revoke(ctx, pair.Access)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})

	t.Run("revocation survives across service instances", func(t *testing.T) {
		fresh := newTestTokenService(store)
		_, err := fresh.Validate(ctx, pair.Refresh, roster.TokenTypeRefresh)
		assert.ErrorIs(t, err, roster.ErrTokenRevoked)
	})
}

func TestAccessTokensSkipBlacklist(t *testing.T) {
	ctx := context.Background()
	store := newMemRevocations()
	svc := newTestTokenService(store)

	pair, err := svc.IssuePair(newTestMember())
	require.NoError(t, err)

	claims, err := svc.Validate(ctx, pair.Access, roster.TokenTypeAccess)
	require.NoError(t, err)

	id, err := uuid.Parse(claims.TokenID())
	require.NoError(t, err)
	require.NoError(t, store.Revoke(ctx, id, claims.Expires()))

	// access validation never consults the blacklist
	_, err = svc.Validate(ctx, pair.Access, roster.TokenTypeAccess)
	assert.NoError(t, err)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newMemRevocations())

	member := newTestMember()
	pair, err := svc.IssuePair(member)
	require.NoError(t, err)

	t.Run("mints a new access token from the refresh snapshot", func(t *testing.T) {
		access, err := svc.Refresh(ctx, pair.Refresh)
		require.NoError(t, err)
		require.NotEmpty(t, access)
		assert.NotEqual(t, pair.Access, access)

		claims, err := svc.Validate(ctx, access, roster.TokenTypeAccess)
		require.NoError(t, err)

		assert.Equal(t, member.ID.String(), claims.UserID())
		assert.Equal(t, member.Email, claims.Email())
		assert.Equal(t, member.TeamID.String(), claims.TeamID())
		assert.True(t, claims.IsTeamLeader())
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.Access)
		require.Error(t, err)
		assertTextCode(t, err, roster.TextCodeTokenMalformed)
	})

	t.Run("revoked refresh token cannot refresh", func(t *testing.T) {
		require.NoError(t, svc.Revoke(ctx, pair.Refresh))

		_, err := svc.Refresh(ctx, pair.Refresh)
		assert.ErrorIs(t, err, roster.ErrTokenRevoked)
	})
}
