// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"primeform/internal/domain/entity"
)

// ProfileUsecase defines the interface for profile-related operations.
type ProfileUsecase interface {
	// GetProfile returns the signed-in user, served from the namespaced
	// cache when a validated entry exists.
	GetProfile(ctx context.Context) (*entity.User, error)

	// SubmitOnboarding validates and submits the onboarding answers.
	SubmitOnboarding(ctx context.Context, input *OnboardingInput) (*entity.UserProfile, error)

	// UpdateProfile patches profile fields and invalidates the cached copy.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) error
}

// --- Input DTOs ---

// OnboardingInput defines the data collected by the onboarding wizard.
type OnboardingInput struct {
	Age               int     `json:"age" validate:"required,gte=13,lte=120"`
	Gender            string  `json:"gender" validate:"required,oneof=male female other"`
	HeightCM          float64 `json:"heightCm" validate:"required,gt=0"`
	WeightKG          float64 `json:"weightKg" validate:"required,gt=0"`
	TargetWeightKG    float64 `json:"targetWeightKg" validate:"required,gt=0"`
	FitnessLevel      string  `json:"fitnessLevel" validate:"required,oneof=beginner intermediate advanced"`
	Goal              string  `json:"goal" validate:"required,oneof=lose_weight build_muscle stay_fit"`
	DietaryPreference string  `json:"dietaryPreference" validate:"omitempty,oneof=none vegetarian vegan halal"`
	WorkoutsPerWeek   int     `json:"workoutsPerWeek" validate:"required,gte=1,lte=7"`
}

// UpdateProfileInput defines the patchable profile fields.
type UpdateProfileInput struct {
	Name            *string  `json:"name,omitempty"`
	WeightKG        *float64 `json:"weightKg,omitempty" validate:"omitempty,gt=0"`
	TargetWeightKG  *float64 `json:"targetWeightKg,omitempty" validate:"omitempty,gt=0"`
	WorkoutsPerWeek *int     `json:"workoutsPerWeek,omitempty" validate:"omitempty,gte=1,lte=7"`
}
