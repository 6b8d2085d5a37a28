package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primeform/config"
	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/router"
	"primeform/internal/delivery/http/router/handler"
	"primeform/internal/delivery/http/validator"
	"primeform/internal/infra/api"
	"primeform/internal/infra/auth"
	"primeform/internal/infra/cache"
	"primeform/internal/infra/persistence/filestore"
	"primeform/internal/usecase"
	"primeform/internal/usecase/impl"
)

// clientStack is one device: the coordinated API client, its persisted
// credential and cache, and the typed services above them.
type clientStack struct {
	auth          usecase.AuthUsecase
	profile       usecase.ProfileUsecase
	plans         usecase.PlanUsecase
	progress      usecase.ProgressUsecase
	subscriptions usecase.SubscriptionUsecase
	notifications usecase.NotificationUsecase
}

func startStubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		DevServer: &config.DevServerConfig{Secret: "e2e-secret", TokenTTL: time.Hour},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	issuer, err := auth.NewTokenIssuer(cfg.DevServer.Secret)
	require.NoError(t, err)
	store := handler.NewStore()

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Validator = validator.New()
	echoServer.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(middleware.NewRequestIDMiddleware(logger).Process)

	router.NewRouter(router.RouterParams{
		AuthHandler:         handler.NewAuthHandler(store, issuer, cfg, logger),
		UserHandler:         handler.NewUserHandler(store, logger),
		PlanHandler:         handler.NewPlanHandler(store, logger),
		ProgressHandler:     handler.NewProgressHandler(store, logger),
		SubscriptionHandler: handler.NewSubscriptionHandler(store, logger),
		NotificationHandler: handler.NewNotificationHandler(store, logger),
		AuthMiddleware:      middleware.NewAuthMiddleware(cfg),
	}).RegisterRoutes(echoServer)

	server := httptest.NewServer(echoServer)
	t.Cleanup(server.Close)

	return server
}

// newClientStack builds the full device-side stack against the stub, with
// its key-value store rooted in a temp directory.
func newClientStack(t *testing.T, baseURL string) *clientStack {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL + "/api/v1"
	cfg.API.Timeout = 10 * time.Second
	cfg.API.LongTimeout = 30 * time.Second

	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	userCache := cache.NewManager(store, logger)
	creds := auth.NewCredentialStore(store)
	decoder := auth.NewTokenDecoder()
	invalidator := auth.NewSessionInvalidator(userCache, logger)

	client, err := api.NewClient(api.Params{
		Config:      cfg,
		Logger:      logger,
		Credentials: creds,
		Invalidator: invalidator,
	})
	require.NoError(t, err)

	return &clientStack{
		auth:          impl.NewAuthService(client, creds, decoder, userCache, logger),
		profile:       impl.NewProfileService(client, userCache, logger),
		plans:         impl.NewPlanService(client, userCache, nil, cfg, logger),
		progress:      impl.NewProgressService(client, userCache, logger),
		subscriptions: impl.NewSubscriptionService(client, userCache, logger),
		notifications: impl.NewNotificationService(client, userCache, logger),
	}
}

func onboardInput() *usecase.OnboardingInput {
	return &usecase.OnboardingInput{
		Age:             28,
		Gender:          "male",
		HeightCM:        180,
		WeightKG:        82,
		TargetWeightKG:  78,
		FitnessLevel:    "intermediate",
		Goal:            "lose_weight",
		WorkoutsPerWeek: 4,
	}
}

// TestSharedDeviceLifecycle walks two users through the same device: sign
// up, onboard, generate and read plans, track progress, sign out. At no
// point may the second user observe the first user's data.
func TestSharedDeviceLifecycle(t *testing.T) {
	server := startStubBackend(t)
	device := newClientStack(t, server.URL)
	ctx := context.Background()

	// First user signs up and builds up state.
	session, err := device.auth.Signup(ctx, &usecase.SignupInput{
		Name: "Alice", Email: "alice@example.com", Password: "password-1",
	})
	require.NoError(t, err)
	firstUserID := session.UserID

	_, err = device.profile.SubmitOnboarding(ctx, onboardInput())
	require.NoError(t, err)

	_, present, err := device.plans.GetDietPlan(ctx)
	require.NoError(t, err, "missing plan must resolve, not fail")
	assert.False(t, present)

	generated, err := device.plans.GenerateDietPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstUserID, generated.UserID)
	assert.Positive(t, generated.DailyCalories)

	fetched, present, err := device.plans.GetDietPlan(ctx)
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, generated.ID, fetched.ID)

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err = device.progress.CompleteDay(ctx, "diet", yesterday)
	require.NoError(t, err)
	_, err = device.progress.CompleteDay(ctx, "diet", today)
	require.NoError(t, err)

	streak, err := device.progress.GetStreak(ctx, "diet")
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)

	require.NoError(t, device.auth.Logout(ctx))

	// Second user takes over the same device.
	session, err = device.auth.Signup(ctx, &usecase.SignupInput{
		Name: "Bob", Email: "bob@example.com", Password: "password-2",
	})
	require.NoError(t, err)
	require.NotEqual(t, firstUserID, session.UserID)

	_, present, err = device.plans.GetDietPlan(ctx)
	require.NoError(t, err)
	assert.False(t, present, "second user must not see the first user's plan")

	completions, err := device.progress.ListCompletions(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, completions, "second user must not see the first user's history")

	sub, err := device.subscriptions.GetSubscription(ctx)
	require.NoError(t, err)
	assert.Equal(t, "free", sub.Plan)

	feed, err := device.notifications.ListNotifications(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, feed)
	for _, item := range feed {
		assert.Equal(t, session.UserID, item.UserID)
	}

	require.NoError(t, device.auth.Logout(ctx))

	// First user returns; the server still holds their plan even though the
	// device cache was purged at logout.
	_, err = device.auth.Login(ctx, &usecase.LoginInput{
		Email: "alice@example.com", Password: "password-1",
	})
	require.NoError(t, err)

	restored, present, err := device.plans.GetDietPlan(ctx)
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, generated.ID, restored.ID)
}

// TestInvalidLoginSurfacesError exercises the stub's credential rejection
// through the full client stack.
func TestInvalidLoginSurfacesError(t *testing.T) {
	server := startStubBackend(t)
	device := newClientStack(t, server.URL)
	ctx := context.Background()

	_, err := device.auth.Signup(ctx, &usecase.SignupInput{
		Name: "Alice", Email: "alice@example.com", Password: "password-1",
	})
	require.NoError(t, err)
	require.NoError(t, device.auth.Logout(ctx))

	_, err = device.auth.Login(ctx, &usecase.LoginInput{
		Email: "alice@example.com", Password: "wrong",
	})
	require.Error(t, err)

	session, err := device.auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", string(session.State))
}
