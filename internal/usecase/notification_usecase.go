// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"primeform/internal/domain/entity"
)

// NotificationUsecase defines the interface for notification operations.
type NotificationUsecase interface {
	ListNotifications(ctx context.Context) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}
