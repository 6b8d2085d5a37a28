package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/infra/auth"
	"primeform/internal/usecase"
)

type authFixtures struct {
	*serviceFixtures
	creds  service.CredentialStore
	issuer service.TokenIssuer
	auth   usecase.AuthUsecase
}

func createTestAuthService(t *testing.T) *authFixtures {
	t.Helper()

	base := createServiceFixtures(t)
	creds := auth.NewCredentialStore(base.store)
	issuer, err := auth.NewTokenIssuer("test-secret")
	require.NoError(t, err)

	return &authFixtures{
		serviceFixtures: base,
		creds:           creds,
		issuer:          issuer,
		auth:            NewAuthService(base.api, creds, auth.NewTokenDecoder(), base.userCache, base.logger),
	}
}

func (f *authFixtures) routeLogin(t *testing.T, endpoint, userID string) {
	t.Helper()

	token, err := f.issuer.Issue(userID, time.Hour)
	require.NoError(t, err)

	f.api.route("POST", endpoint, okResult(t, map[string]string{"token": token}), nil)
}

func TestAuthService_LoginCommitsIdentity(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	fixtures.routeLogin(t, "/auth/login", "user-1")
	ctx := context.Background()

	session, err := fixtures.auth.Login(ctx, &usecase.LoginInput{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionActive, session.State)
	assert.Equal(t, "user-1", session.UserID)

	token, err := fixtures.creds.Token(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := fixtures.userCache.GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestAuthService_SignupCommitsIdentity(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	fixtures.routeLogin(t, "/auth/signup", "user-9")
	ctx := context.Background()

	session, err := fixtures.auth.Signup(ctx, &usecase.SignupInput{
		Name: "Sam", Email: "sam@example.com", Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-9", session.UserID)
}

func TestAuthService_UnusableTokenPersistsNothing(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	fixtures.api.route("POST", "/auth/login", okResult(t, map[string]string{"token": "not-a-jwt"}), nil)
	ctx := context.Background()

	_, err := fixtures.auth.Login(ctx, &usecase.LoginInput{Email: "a@b.com", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenUnusable))

	token, err := fixtures.creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "no credential may persist after a failed commit")

	userID, err := fixtures.userCache.GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestAuthService_LoginPurgesPreviousUsersCache(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	fixtures.routeLogin(t, "/auth/login", "user-2")
	ctx := context.Background()

	require.NoError(t, fixtures.userCache.WriteResource(ctx, "profile", "user-1", map[string]string{"name": "old"}))

	_, err := fixtures.auth.Login(ctx, &usecase.LoginInput{Email: "b@b.com", Password: "secret123"})
	require.NoError(t, err)

	var out map[string]string
	found, err := fixtures.userCache.ReadResource(ctx, "profile", "user-1", &out)
	require.NoError(t, err)
	assert.False(t, found, "previous user's cache must be purged on login")
}

func TestAuthService_LogoutClearsStateEvenWhenServerFails(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	fixtures.routeLogin(t, "/auth/login", "user-1")
	ctx := context.Background()

	_, err := fixtures.auth.Login(ctx, &usecase.LoginInput{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, fixtures.userCache.WriteResource(ctx, "dietPlan", "user-1", map[string]string{"id": "p1"}))

	fixtures.api.route("POST", "/auth/logout", nil, errors.New("network down"))

	require.NoError(t, fixtures.auth.Logout(ctx))

	userID, err := fixtures.userCache.GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, userID)

	token, err := fixtures.creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	var out map[string]string
	found, err := fixtures.userCache.ReadResource(ctx, "dietPlan", "user-1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuthService_LogoutWhenAnonymous(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)

	assert.NoError(t, fixtures.auth.Logout(context.Background()))
}

func TestAuthService_Restore(t *testing.T) {
	t.Parallel()

	t.Run("no stored token yields anonymous", func(t *testing.T) {
		t.Parallel()

		fixtures := createTestAuthService(t)

		session, err := fixtures.auth.Restore(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.SessionAnonymous, session.State)
	})

	t.Run("valid stored token resumes the session", func(t *testing.T) {
		t.Parallel()

		fixtures := createTestAuthService(t)
		ctx := context.Background()

		token, err := fixtures.issuer.Issue("user-7", time.Hour)
		require.NoError(t, err)
		require.NoError(t, fixtures.creds.SetToken(ctx, token))

		session, err := fixtures.auth.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.SessionActive, session.State)
		assert.Equal(t, "user-7", session.UserID)

		userID, err := fixtures.userCache.GetCurrentUserID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-7", userID)
	})

	t.Run("unusable stored token is dropped", func(t *testing.T) {
		t.Parallel()

		fixtures := createTestAuthService(t)
		ctx := context.Background()

		require.NoError(t, fixtures.creds.SetToken(ctx, "corrupted"))

		session, err := fixtures.auth.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.SessionAnonymous, session.State)

		token, err := fixtures.creds.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestAuthService_CurrentSession(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	ctx := context.Background()

	session, err := fixtures.auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAnonymous, session.State)

	fixtures.signIn(t, "user-3")

	session, err = fixtures.auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionActive, session.State)
	assert.Equal(t, "user-3", session.UserID)
}
