// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"primeform/internal/domain/entity"
)

// PlanUsecase defines the interface for diet and workout plan operations.
// The boolean results distinguish "no active plan" (a normal state the
// backend reports as a soft absence) from transport failures.
type PlanUsecase interface {
	GetDietPlan(ctx context.Context) (*entity.DietPlan, bool, error)
	GetWorkoutPlan(ctx context.Context) (*entity.WorkoutPlan, bool, error)

	// GenerateDietPlan asks the backend to produce a fresh plan. Generation
	// is a known long-running operation and runs under the extended timeout.
	GenerateDietPlan(ctx context.Context) (*entity.DietPlan, error)
	GenerateWorkoutPlan(ctx context.Context) (*entity.WorkoutPlan, error)

	// SharePlanQR renders a QR code other devices can scan to import a plan.
	SharePlanQR(ctx context.Context, planType string) ([]byte, error)
}
