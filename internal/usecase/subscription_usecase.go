// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"primeform/internal/domain/entity"
)

// SubscriptionUsecase defines the interface for billing-state reads.
type SubscriptionUsecase interface {
	// GetSubscription returns the user's subscription. When the backend
	// reports no subscription, a default free-tier value is returned.
	GetSubscription(ctx context.Context) (*entity.Subscription, error)
}
