package handler

import (
	"log/slog"
	"net/http"

	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the stub backend's notification endpoints.
type NotificationHandler struct {
	store  *Store
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(store *Store, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{store: store, logger: logger}
}

// List returns the caller's notification feed, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Notifications(middleware.UserID(c)), "")
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := middleware.UserID(c)
	notificationID := c.Param("id")
	if !h.store.MarkNotificationRead(userID, notificationID) {
		return response.NotFound(c, "NOTIFICATION_NOT_FOUND", "Notification not found")
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": notificationID}, "Notification marked read")
}
