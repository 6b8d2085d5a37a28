package handler

import (
	"log/slog"
	"net/http"

	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/response"
	"primeform/internal/domain/entity"
	"primeform/internal/errors"
	"primeform/internal/usecase"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the stub backend's profile endpoints.
type UserHandler struct {
	store  *Store
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(store *Store, logger *slog.Logger) *UserHandler {
	return &UserHandler{store: store, logger: logger}
}

// Me returns the authenticated user.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.store.User(middleware.UserID(c))
	if err != nil {
		return response.NotFound(c, "USER_NOT_FOUND", "User not found")
	}

	return response.Success(c, http.StatusOK, user, "")
}

// SubmitOnboarding stores the onboarding answers.
func (h *UserHandler) SubmitOnboarding(c echo.Context) error {
	var input usecase.OnboardingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid onboarding input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	userID := middleware.UserID(c)
	profile := &entity.UserProfile{
		Age:               input.Age,
		Gender:            input.Gender,
		HeightCM:          input.HeightCM,
		WeightKG:          input.WeightKG,
		TargetWeightKG:    input.TargetWeightKG,
		FitnessLevel:      input.FitnessLevel,
		Goal:              input.Goal,
		DietaryPreference: input.DietaryPreference,
		WorkoutsPerWeek:   input.WorkoutsPerWeek,
	}
	if err := h.store.SaveProfile(userID, profile); err != nil {
		return response.NotFound(c, "USER_NOT_FOUND", "User not found")
	}

	h.logger.Info("Onboarding stored", slog.String("user_id", userID))

	return response.Success(c, http.StatusOK, profile, "Onboarding complete")
}

// UpdateMe applies a partial profile patch.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile patch")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	userID := middleware.UserID(c)
	if err := h.store.UpdateUser(userID, input.Name, input.WeightKG, input.TargetWeightKG, input.WorkoutsPerWeek); err != nil {
		return response.NotFound(c, "USER_NOT_FOUND", "User not found")
	}

	user, err := h.store.User(userID)
	if err != nil {
		return response.NotFound(c, "USER_NOT_FOUND", "User not found")
	}

	return response.Success(c, http.StatusOK, user, "Profile updated")
}
