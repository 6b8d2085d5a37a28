// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"primeform/internal/domain/entity"
)

// ProgressUsecase defines the interface for completion and streak tracking.
type ProgressUsecase interface {
	// CompleteDay marks one plan day done. Completing the same day twice
	// is accepted and returns the existing record.
	CompleteDay(ctx context.Context, planType, date string) (*entity.CompletionRecord, error)

	// ListCompletions returns the user's completion history, cache-through.
	ListCompletions(ctx context.Context, planType string) ([]*entity.CompletionRecord, error)

	// GetStreak returns the current/longest streak for a plan type.
	GetStreak(ctx context.Context, planType string) (*entity.Streak, error)
}
