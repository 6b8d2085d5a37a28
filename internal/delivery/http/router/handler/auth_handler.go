package handler

import (
	"log/slog"
	"net/http"

	"primeform/config"
	"primeform/internal/delivery/http/response"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler issues tokens for the stub backend.
type AuthHandler struct {
	store  *Store
	issuer service.TokenIssuer
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(store *Store, issuer service.TokenIssuer, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer, cfg: cfg, logger: logger}
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.store.CreateAccount(input.Name, input.Email, input.Password)
	if err != nil {
		return response.Conflict(c, "USER_ALREADY_EXISTS", "An account with this email already exists")
	}

	token, err := h.issuer.Issue(user.ID, h.cfg.DevServer.TokenTTL)
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.Info("Account created", slog.String("user_id", user.ID))

	return response.Success(c, http.StatusCreated, map[string]string{"token": token}, "Account created")
}

// Login handles the authentication request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.store.Authenticate(input.Email, input.Password)
	if err != nil {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := h.issuer.Issue(user.ID, h.cfg.DevServer.TokenTTL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": token}, "Login successful")
}

// Logout acknowledges the logout. The stub keeps no server-side session
// state, so there is nothing to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}
