package handler

import (
	"log/slog"
	"net/http"
	"time"

	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// completionInput is the request shape for marking a plan day done.
type completionInput struct {
	PlanType string `json:"planType" validate:"required,oneof=diet workout"`
	Date     string `json:"date" validate:"required"`
}

// ProgressHandler serves the stub backend's completion and streak endpoints.
type ProgressHandler struct {
	store  *Store
	logger *slog.Logger
}

// NewProgressHandler is the constructor for ProgressHandler, injected by Fx.
func NewProgressHandler(store *Store, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{store: store, logger: logger}
}

// CreateCompletion marks one plan day done. Duplicate submissions return the
// existing record.
func (h *ProgressHandler) CreateCompletion(c echo.Context) error {
	var input completionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid completion input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return response.BadRequest(c, "INVALID_DATE", "Date must be YYYY-MM-DD")
	}

	record := h.store.AddCompletion(middleware.UserID(c), input.PlanType, input.Date)

	return response.Success(c, http.StatusOK, record, "Day completed")
}

// ListCompletions returns the caller's completion history.
func (h *ProgressHandler) ListCompletions(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Completions(middleware.UserID(c)), "")
}

// GetStreak returns the derived streak for one plan type.
func (h *ProgressHandler) GetStreak(c echo.Context) error {
	planType := c.Param("planType")
	if planType != "diet" && planType != "workout" {
		return response.BadRequest(c, "INVALID_PLAN_TYPE", "Plan type must be diet or workout")
	}

	return response.Success(c, http.StatusOK, h.store.Streak(middleware.UserID(c), planType), "")
}
