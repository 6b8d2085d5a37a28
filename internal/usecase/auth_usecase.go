// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"primeform/internal/domain/entity"
)

// AuthUsecase drives the identity lifecycle: Anonymous -> Authenticating ->
// Active -> LoggingOut -> Anonymous.
type AuthUsecase interface {
	// Signup registers a new account and commits the returned identity.
	Signup(ctx context.Context, input *SignupInput) (*entity.Session, error)

	// Login authenticates and commits the returned identity: the token is
	// stored, the user id slot is written durably, orphaned cache from any
	// prior identity is purged, and a validation pass runs.
	Login(ctx context.Context, input *LoginInput) (*entity.Session, error)

	// Logout purges the outgoing user's namespaces and clears the identity
	// slot and credential. Safe to call when already anonymous.
	Logout(ctx context.Context) error

	// Restore resumes a previous session from stored state at startup.
	Restore(ctx context.Context) (*entity.Session, error)

	// CurrentSession reports the present lifecycle state.
	CurrentSession(ctx context.Context) (*entity.Session, error)
}

// --- Input DTOs ---

// SignupInput defines the data required to register.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
