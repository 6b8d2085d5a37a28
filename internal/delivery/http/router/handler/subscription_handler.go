package handler

import (
	"log/slog"
	"net/http"

	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// msgNotAuthorized is the guard message for premium-only routes. Clients
// tolerate this exact 401 shape as "no subscription" rather than escalating.
const msgNotAuthorized = "Not authorized to access this route"

type subscribeInput struct {
	Plan string `json:"plan" validate:"required,oneof=monthly yearly"`
}

// SubscriptionHandler serves the stub backend's billing endpoints.
type SubscriptionHandler struct {
	store  *Store
	logger *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler, injected by Fx.
func NewSubscriptionHandler(store *Store, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{store: store, logger: logger}
}

// Current returns the caller's paid subscription. Free-tier users get the
// premium guard's 401, matching the production route guard.
func (h *SubscriptionHandler) Current(c echo.Context) error {
	sub := h.store.Subscription(middleware.UserID(c))
	if sub == nil {
		return response.Unauthorized(c, "SUBSCRIPTION_REQUIRED", msgNotAuthorized)
	}

	return response.Success(c, http.StatusOK, sub, "")
}

// Subscribe grants the caller a paid subscription. Development convenience,
// stands in for the real billing provider webhook.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var input subscribeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	userID := middleware.UserID(c)
	sub := h.store.SetSubscription(userID, input.Plan)
	h.store.AddNotification(userID, "billing", "Subscription active", "Your "+input.Plan+" plan is now active.")
	h.logger.Info("Subscription granted", slog.String("user_id", userID), slog.String("plan", input.Plan))

	return response.Success(c, http.StatusCreated, sub, "Subscription active")
}
