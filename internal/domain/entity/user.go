// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core entity in the system, representing a unique account as the
// backend reports it. The ID is the scalar user identifier embedded in the
// identity token; every namespaced cache key is derived from it.
type User struct {
	ID        string       `json:"id"`        // The user identifier extracted from the identity token.
	Email     string       `json:"email"`     // The user's primary contact email, used as the login identifier.
	Name      string       `json:"name"`      // The user's display name.
	Profile   *UserProfile `json:"profile"`   // A pointer to the onboarding profile. Nil until onboarding completes.
	CreatedAt time.Time    `json:"createdAt"` // Timestamp of when this account was created.
	UpdatedAt time.Time    `json:"updatedAt"` // Timestamp of the last modification to this account.
}

// UserProfile holds the onboarding answers the plan generator works from.
type UserProfile struct {
	UserID             string    `json:"userId"`             // Foreign key linking this profile to a User.
	Age                int       `json:"age"`                // The user's age in years.
	Gender             string    `json:"gender"`             // Self-reported gender.
	HeightCM           float64   `json:"heightCm"`           // Height in centimeters.
	WeightKG           float64   `json:"weightKg"`           // Current weight in kilograms.
	TargetWeightKG     float64   `json:"targetWeightKg"`     // Goal weight in kilograms.
	FitnessLevel       string    `json:"fitnessLevel"`       // One of beginner, intermediate, advanced.
	Goal               string    `json:"goal"`               // Primary goal, e.g. lose_weight, build_muscle, stay_fit.
	DietaryPreference  string    `json:"dietaryPreference"`  // e.g. none, vegetarian, vegan, halal.
	WorkoutsPerWeek    int       `json:"workoutsPerWeek"`    // How many sessions the user committed to.
	OnboardingComplete bool      `json:"onboardingComplete"` // Whether the onboarding wizard finished.
	UpdatedAt          time.Time `json:"updatedAt"`          // Timestamp of the last modification to this profile.
}
