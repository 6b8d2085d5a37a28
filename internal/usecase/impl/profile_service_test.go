package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/errors"
	"primeform/internal/usecase"
)

func validOnboardingInput() *usecase.OnboardingInput {
	return &usecase.OnboardingInput{
		Age:             30,
		Gender:          "female",
		HeightCM:        170,
		WeightKG:        70,
		TargetWeightKG:  65,
		FitnessLevel:    "beginner",
		Goal:            "lose_weight",
		WorkoutsPerWeek: 3,
	}
}

func TestProfileService_GetProfileRequiresIdentity(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	svc := NewProfileService(fixtures.api, fixtures.userCache, fixtures.logger)

	_, err := svc.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
	assert.Zero(t, fixtures.api.callCount("GET", "/users/me"))
}

func TestProfileService_GetProfileIsCacheThrough(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	fixtures.api.route("GET", "/users/me", okResult(t, &entity.User{ID: "user-1", Name: "Ada"}), nil)
	svc := NewProfileService(fixtures.api, fixtures.userCache, fixtures.logger)
	ctx := context.Background()

	first, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", first.Name)

	second, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fixtures.api.callCount("GET", "/users/me"), "second read must come from cache")
}

func TestProfileService_SubmitOnboardingRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	svc := NewProfileService(fixtures.api, fixtures.userCache, fixtures.logger)

	input := validOnboardingInput()
	input.Age = 7

	_, err := svc.SubmitOnboarding(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.Zero(t, fixtures.api.callCount("POST", "/users/onboarding"), "invalid input must not reach the network")
}

func TestProfileService_SubmitOnboardingInvalidatesCachedProfile(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	ctx := context.Background()

	require.NoError(t, fixtures.userCache.WriteResource(ctx, "profile", "user-1", &entity.User{ID: "user-1", Name: "Stale"}))
	fixtures.api.route("POST", "/users/onboarding", okResult(t, &entity.UserProfile{OnboardingComplete: true}), nil)
	svc := NewProfileService(fixtures.api, fixtures.userCache, fixtures.logger)

	profile, err := svc.SubmitOnboarding(ctx, validOnboardingInput())
	require.NoError(t, err)
	assert.True(t, profile.OnboardingComplete)

	var cached entity.User
	found, err := fixtures.userCache.ReadResource(ctx, "profile", "user-1", &cached)
	require.NoError(t, err)
	assert.False(t, found, "cached profile must be dropped after onboarding")
}

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	ctx := context.Background()

	require.NoError(t, fixtures.userCache.WriteResource(ctx, "profile", "user-1", &entity.User{ID: "user-1"}))
	svc := NewProfileService(fixtures.api, fixtures.userCache, fixtures.logger)

	name := "Grace"
	require.NoError(t, svc.UpdateProfile(ctx, &usecase.UpdateProfileInput{Name: &name}))
	assert.Equal(t, 1, fixtures.api.callCount("PATCH", "/users/me"))

	var cached entity.User
	found, err := fixtures.userCache.ReadResource(ctx, "profile", "user-1", &cached)
	require.NoError(t, err)
	assert.False(t, found)
}
