package impl

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"primeform/internal/appcontext"
	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/usecase"
)

// nsProfile is the cache namespace for the signed-in user, one of
// cache.Namespaces.
const nsProfile = "profile"

// profileService implements the ProfileUsecase interface.
type profileService struct {
	api       service.APIClient
	userCache repository.UserCacheRepository
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	api service.APIClient,
	userCache repository.UserCacheRepository,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		api:       api,
		userCache: userCache,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the signed-in user, cache-through.
func (srv *profileService) GetProfile(ctx context.Context) (*entity.User, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	var cached entity.User
	found, err := srv.userCache.ReadResource(ctx, nsProfile, userID, &cached)
	if err != nil {
		srv.log(ctx).Warn("Profile cache read failed", slog.Any("error", err))
	}
	if found {
		srv.log(ctx).Debug("Profile served from cache", slog.String("user_id", userID))

		return &cached, nil
	}

	result, err := srv.api.Get(ctx, "/users/me")
	if err != nil {
		return nil, errors.Wrap(err, "fetch profile")
	}

	var user entity.User
	if err := result.Decode(&user); err != nil {
		return nil, errors.Wrap(err, "decode profile")
	}

	if err := srv.userCache.WriteResource(ctx, nsProfile, userID, &user); err != nil {
		srv.log(ctx).Warn("Profile cache write failed", slog.Any("error", err))
	}

	return &user, nil
}

// SubmitOnboarding validates and submits the onboarding answers.
func (srv *profileService) SubmitOnboarding(ctx context.Context, input *usecase.OnboardingInput) (*entity.UserProfile, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	srv.log(ctx).Info("Submitting onboarding profile")

	result, err := srv.api.Post(ctx, "/users/onboarding", input)
	if err != nil {
		return nil, errors.Wrap(err, "submit onboarding")
	}

	var profile entity.UserProfile
	if err := result.Decode(&profile); err != nil {
		return nil, errors.Wrap(err, "decode onboarding response")
	}

	srv.invalidateProfile(ctx)

	return &profile, nil
}

// UpdateProfile patches profile fields and invalidates the cached copy.
func (srv *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) error {
	if err := srv.validate.Struct(input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	if _, err := srv.api.Patch(ctx, "/users/me", input); err != nil {
		return errors.Wrap(err, "update profile")
	}

	srv.invalidateProfile(ctx)

	return nil
}

// invalidateProfile drops the cached profile after a mutation so the next
// read refetches. Failures degrade to a stale cache, never to an error.
func (srv *profileService) invalidateProfile(ctx context.Context) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil || userID == "" {
		return
	}

	if err := srv.userCache.InvalidateResource(ctx, nsProfile, userID); err != nil {
		srv.log(ctx).Warn("Profile cache invalidation failed", slog.Any("error", err))
	}
}
