package impl

import (
	"context"
	"log/slog"

	"primeform/internal/appcontext"
	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/usecase"
)

const nsNotifications = "notifications"

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	api       service.APIClient
	userCache repository.UserCacheRepository
	logger    *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(
	api service.APIClient,
	userCache repository.UserCacheRepository,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		api:       api,
		userCache: userCache,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *notificationService) currentUserID(ctx context.Context) (string, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return "", errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return "", errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	return userID, nil
}

// ListNotifications returns the user's notification feed, cache-through.
func (srv *notificationService) ListNotifications(ctx context.Context) ([]*entity.Notification, error) {
	userID, err := srv.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var items []*entity.Notification
	found, err := srv.userCache.ReadResource(ctx, nsNotifications, userID, &items)
	if err != nil {
		srv.log(ctx).Warn("Notification cache read failed", slog.Any("error", err))
	}
	if found {
		return items, nil
	}

	result, err := srv.api.Get(ctx, "/notifications")
	if err != nil {
		return nil, errors.Wrap(err, "fetch notifications")
	}
	if err := result.Decode(&items); err != nil {
		return nil, errors.Wrap(err, "decode notifications")
	}

	if err := srv.userCache.WriteResource(ctx, nsNotifications, userID, items); err != nil {
		srv.log(ctx).Warn("Notification cache write failed", slog.Any("error", err))
	}

	return items, nil
}

// MarkRead flags one notification as read and drops the cached feed so the
// next list reflects the change.
func (srv *notificationService) MarkRead(ctx context.Context, notificationID string) error {
	userID, err := srv.currentUserID(ctx)
	if err != nil {
		return err
	}

	if _, err := srv.api.Patch(ctx, "/notifications/"+notificationID+"/read", nil); err != nil {
		return errors.Wrap(err, "mark notification read")
	}

	if err := srv.userCache.InvalidateResource(ctx, nsNotifications, userID); err != nil {
		srv.log(ctx).Warn("Notification cache invalidation failed", slog.Any("error", err))
	}

	return nil
}
