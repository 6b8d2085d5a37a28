// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"primeform/internal/appcontext"
	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/usecase"
)

// authService implements the AuthUsecase interface. It owns the identity
// lifecycle: committing a new identity after login, restoring one at
// startup, and tearing one down at logout.
type authService struct {
	api       service.APIClient
	creds     service.CredentialStore
	decoder   service.TokenDecoder
	userCache repository.UserCacheRepository
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	api service.APIClient,
	creds service.CredentialStore,
	decoder service.TokenDecoder,
	userCache repository.UserCacheRepository,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		api:       api,
		creds:     creds,
		decoder:   decoder,
		userCache: userCache,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, srv.logger)
}

// tokenResponse is the payload shape of login and signup responses.
type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates and commits the returned identity.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Session, error) {
	srv.log(ctx).Info("Logging in", slog.String("email", input.Email))

	result, err := srv.api.Post(ctx, "/auth/login", input)
	if err != nil {
		srv.log(ctx).Error("Login request failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "login request")
	}

	var payload tokenResponse
	if err := result.Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode login response")
	}

	return srv.commitIdentity(ctx, payload.Token)
}

// Signup registers a new account and commits the returned identity.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*entity.Session, error) {
	srv.log(ctx).Info("Signing up", slog.String("email", input.Email))

	result, err := srv.api.Post(ctx, "/auth/signup", input)
	if err != nil {
		srv.log(ctx).Error("Signup request failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "signup request")
	}

	var payload tokenResponse
	if err := result.Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode signup response")
	}

	return srv.commitIdentity(ctx, payload.Token)
}

// commitIdentity drives Authenticating -> Active. The token must carry a
// recoverable user id; otherwise the session stays anonymous and nothing is
// persisted. The identity slot write is durable before any dependent cache
// work starts, and cache hygiene failures never abort the transition.
func (srv *authService) commitIdentity(ctx context.Context, token string) (*entity.Session, error) {
	userID := srv.decoder.UserIDFromToken(token)
	if userID == "" {
		srv.log(ctx).Error("Issued token carries no recoverable user id")

		return nil, errors.WithStack(domainerrors.ErrTokenUnusable)
	}

	if err := srv.creds.SetToken(ctx, token); err != nil {
		return nil, errors.Wrap(err, "store credential")
	}

	if err := srv.userCache.SetCurrentUserID(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "commit user id")
	}

	if err := srv.userCache.CleanupOrphanedCache(ctx, userID); err != nil {
		srv.log(ctx).Warn("Orphan cleanup failed", slog.Any("error", err))
	}
	if err := srv.userCache.ValidateCacheOnLogin(ctx, userID); err != nil {
		srv.log(ctx).Warn("Login cache validation failed", slog.Any("error", err))
	}

	srv.log(ctx).Info("Identity committed", slog.String("user_id", userID))

	return &entity.Session{State: entity.SessionActive, UserID: userID}, nil
}

// Logout drives Active -> LoggingOut -> Anonymous. The outgoing user id is
// read before the slot is cleared so the purge can target its namespaces.
func (srv *authService) Logout(ctx context.Context) error {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		srv.log(ctx).Warn("Failed to read outgoing user id", slog.Any("error", err))
	}

	srv.log(ctx).Info("Logging out", slog.String("user_id", userID))

	// Best effort: the server invalidates its session record, but a network
	// failure must not keep the device signed in.
	if _, err := srv.api.Post(ctx, "/auth/logout", nil); err != nil {
		srv.log(ctx).Warn("Server logout failed", slog.Any("error", err))
	}

	if userID != "" {
		if err := srv.userCache.ClearUserCache(ctx, userID); err != nil {
			srv.log(ctx).Warn("Cache purge failed during logout", slog.Any("error", err))
		}
	}

	if err := srv.userCache.ClearCurrentUserID(ctx); err != nil {
		return errors.Wrap(err, "clear user id")
	}
	if err := srv.creds.ClearToken(ctx); err != nil {
		return errors.Wrap(err, "clear credential")
	}

	return nil
}

// Restore resumes a previous session from stored state at startup.
func (srv *authService) Restore(ctx context.Context) (*entity.Session, error) {
	token, err := srv.creds.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load credential")
	}
	if token == "" {
		return &entity.Session{State: entity.SessionAnonymous}, nil
	}

	userID := srv.decoder.UserIDFromToken(token)
	if userID == "" {
		// A stored token that lost its id is unusable; drop it.
		srv.log(ctx).Warn("Dropping stored token without recoverable user id")
		if err := srv.creds.ClearToken(ctx); err != nil {
			srv.log(ctx).Warn("Failed to drop unusable token", slog.Any("error", err))
		}

		return &entity.Session{State: entity.SessionAnonymous}, nil
	}

	if err := srv.userCache.SetCurrentUserID(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "commit restored user id")
	}
	if err := srv.userCache.ValidateCacheOnLogin(ctx, userID); err != nil {
		srv.log(ctx).Warn("Restore cache validation failed", slog.Any("error", err))
	}

	srv.log(ctx).Info("Session restored", slog.String("user_id", userID))

	return &entity.Session{State: entity.SessionActive, UserID: userID}, nil
}

// CurrentSession reports the present lifecycle state.
func (srv *authService) CurrentSession(ctx context.Context) (*entity.Session, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return &entity.Session{State: entity.SessionAnonymous}, nil
	}

	return &entity.Session{State: entity.SessionActive, UserID: userID}, nil
}
