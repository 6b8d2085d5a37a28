package impl

import (
	"context"
	"log/slog"
	"time"

	"primeform/internal/appcontext"
	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/usecase"
)

const nsSubscription = "subscription"

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	api       service.APIClient
	userCache repository.UserCacheRepository
	logger    *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(
	api service.APIClient,
	userCache repository.UserCacheRepository,
	logger *slog.Logger,
) usecase.SubscriptionUsecase {
	return &subscriptionService{
		api:       api,
		userCache: userCache,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSubscription returns the user's subscription, cache-through. A backend
// that reports no subscription yields a free-tier value instead of an error.
func (srv *subscriptionService) GetSubscription(ctx context.Context) (*entity.Subscription, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	var sub entity.Subscription
	found, err := srv.userCache.ReadResource(ctx, nsSubscription, userID, &sub)
	if err != nil {
		srv.log(ctx).Warn("Subscription cache read failed", slog.Any("error", err))
	}
	if found {
		return &sub, nil
	}

	result, err := srv.api.Get(ctx, "/subscriptions/current")
	if err != nil {
		return nil, errors.Wrap(err, "fetch subscription")
	}
	if result.Absent {
		// No billing record means the free tier.
		return &entity.Subscription{
			UserID:    userID,
			Plan:      "free",
			IsActive:  true,
			StartedAt: time.Now().UTC(),
		}, nil
	}

	if err := result.Decode(&sub); err != nil {
		return nil, errors.Wrap(err, "decode subscription")
	}

	if err := srv.userCache.WriteResource(ctx, nsSubscription, userID, &sub); err != nil {
		srv.log(ctx).Warn("Subscription cache write failed", slog.Any("error", err))
	}

	return &sub, nil
}
