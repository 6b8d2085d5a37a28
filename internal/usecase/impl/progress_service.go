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

const nsCompletions = "completions"

// progressService implements the ProgressUsecase interface.
type progressService struct {
	api       service.APIClient
	userCache repository.UserCacheRepository
	logger    *slog.Logger
}

// NewProgressService is the constructor for progressService.
func NewProgressService(
	api service.APIClient,
	userCache repository.UserCacheRepository,
	logger *slog.Logger,
) usecase.ProgressUsecase {
	return &progressService{
		api:       api,
		userCache: userCache,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *progressService) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *progressService) currentUserID(ctx context.Context) (string, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return "", errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return "", errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	return userID, nil
}

// CompleteDay marks one plan day done and drops the cached history.
func (srv *progressService) CompleteDay(ctx context.Context, planType, date string) (*entity.CompletionRecord, error) {
	userID, err := srv.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Marking day complete",
		slog.String("plan_type", planType), slog.String("date", date))

	result, err := srv.api.Post(ctx, "/completions", map[string]string{
		"planType": planType,
		"date":     date,
	})
	if err != nil {
		return nil, errors.Wrap(err, "submit completion")
	}

	var record entity.CompletionRecord
	if err := result.Decode(&record); err != nil {
		return nil, errors.Wrap(err, "decode completion")
	}

	if err := srv.userCache.InvalidateResource(ctx, nsCompletions, userID); err != nil {
		srv.log(ctx).Warn("Completions cache invalidation failed", slog.Any("error", err))
	}

	return &record, nil
}

// ListCompletions returns the user's completion history, cache-through.
func (srv *progressService) ListCompletions(ctx context.Context, planType string) ([]*entity.CompletionRecord, error) {
	userID, err := srv.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var all []*entity.CompletionRecord
	found, err := srv.userCache.ReadResource(ctx, nsCompletions, userID, &all)
	if err != nil {
		srv.log(ctx).Warn("Completions cache read failed", slog.Any("error", err))
	}
	if !found {
		result, err := srv.api.Get(ctx, "/completions")
		if err != nil {
			return nil, errors.Wrap(err, "fetch completions")
		}
		if err := result.Decode(&all); err != nil {
			return nil, errors.Wrap(err, "decode completions")
		}

		if err := srv.userCache.WriteResource(ctx, nsCompletions, userID, all); err != nil {
			srv.log(ctx).Warn("Completions cache write failed", slog.Any("error", err))
		}
	}

	if planType == "" {
		return all, nil
	}

	filtered := make([]*entity.CompletionRecord, 0, len(all))
	for _, record := range all {
		if record.PlanType == planType {
			filtered = append(filtered, record)
		}
	}

	return filtered, nil
}

// GetStreak returns the current/longest streak for a plan type. Streaks are
// computed server-side from the completion history and not cached locally.
func (srv *progressService) GetStreak(ctx context.Context, planType string) (*entity.Streak, error) {
	if _, err := srv.currentUserID(ctx); err != nil {
		return nil, err
	}

	result, err := srv.api.Get(ctx, "/streaks/"+planType)
	if err != nil {
		return nil, errors.Wrap(err, "fetch streak")
	}

	var streak entity.Streak
	if err := result.Decode(&streak); err != nil {
		return nil, errors.Wrap(err, "decode streak")
	}

	return &streak, nil
}
