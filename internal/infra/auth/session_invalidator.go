package auth

import (
	"context"
	"log/slog"

	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
)

// sessionInvalidator tears down local identity state when the Request
// Coordinator observes an unrecoverable 401. The coordinator clears the
// credential itself; this component handles the cache side: purge the
// outgoing user's namespaces, then empty the identity slot. Order matters,
// the purge must read the outgoing identifier before it is cleared.
type sessionInvalidator struct {
	userCache repository.UserCacheRepository
	logger    *slog.Logger
}

// NewSessionInvalidator is the constructor for sessionInvalidator.
func NewSessionInvalidator(userCache repository.UserCacheRepository, logger *slog.Logger) service.AuthInvalidator {
	return &sessionInvalidator{userCache: userCache, logger: logger}
}

// InvalidateAuth purges the active user's cache and clears the identity
// slot. Failures are logged and swallowed: an invalidation must always leave
// the session anonymous, even if cleanup is incomplete.
func (s *sessionInvalidator) InvalidateAuth(ctx context.Context) {
	userID, err := s.userCache.GetCurrentUserID(ctx)
	if err != nil {
		s.logger.Warn("Failed to read user id during auth invalidation", slog.Any("error", err))
	}

	if userID != "" {
		if err := s.userCache.ClearUserCache(ctx, userID); err != nil {
			s.logger.Warn("Failed to purge user cache during auth invalidation",
				slog.String("user_id", userID), slog.Any("error", err))
		}
	}

	if err := s.userCache.ClearCurrentUserID(ctx); err != nil {
		s.logger.Warn("Failed to clear user id during auth invalidation", slog.Any("error", err))
	}
}
