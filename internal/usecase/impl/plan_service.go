package impl

import (
	"context"
	"log/slog"

	"primeform/config"
	"primeform/internal/appcontext"
	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/usecase"
)

const (
	nsDietPlan    = "dietPlan"
	nsWorkoutPlan = "workoutPlan"
)

// planService implements the PlanUsecase interface.
type planService struct {
	api       service.APIClient
	userCache repository.UserCacheRepository
	qr        service.QRCodeService
	cfg       *config.Config
	logger    *slog.Logger
}

// NewPlanService is the constructor for planService.
func NewPlanService(
	api service.APIClient,
	userCache repository.UserCacheRepository,
	qr service.QRCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PlanUsecase {
	return &planService{
		api:       api,
		userCache: userCache,
		qr:        qr,
		cfg:       cfg,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *planService) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDietPlan returns the active diet plan, cache-through. The second result
// is false when the backend reports no active plan.
func (srv *planService) GetDietPlan(ctx context.Context) (*entity.DietPlan, bool, error) {
	var plan entity.DietPlan
	present, err := srv.getPlan(ctx, nsDietPlan, "/diet-plans/current", &plan)
	if err != nil || !present {
		return nil, false, err
	}

	return &plan, true, nil
}

// GetWorkoutPlan returns the active workout plan, cache-through.
func (srv *planService) GetWorkoutPlan(ctx context.Context) (*entity.WorkoutPlan, bool, error) {
	var plan entity.WorkoutPlan
	present, err := srv.getPlan(ctx, nsWorkoutPlan, "/workout-plans/current", &plan)
	if err != nil || !present {
		return nil, false, err
	}

	return &plan, true, nil
}

func (srv *planService) getPlan(ctx context.Context, namespace, endpoint string, out any) (bool, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return false, errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return false, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	found, err := srv.userCache.ReadResource(ctx, namespace, userID, out)
	if err != nil {
		srv.log(ctx).Warn("Plan cache read failed",
			slog.String("namespace", namespace), slog.Any("error", err))
	}
	if found {
		srv.log(ctx).Debug("Plan served from cache",
			slog.String("namespace", namespace), slog.String("user_id", userID))

		return true, nil
	}

	result, err := srv.api.Get(ctx, endpoint)
	if err != nil {
		return false, errors.Wrapf(err, "fetch %s", namespace)
	}
	if result.Absent {
		// "No active plan" is a normal state, not an error.
		return false, nil
	}

	if err := result.Decode(out); err != nil {
		return false, errors.Wrapf(err, "decode %s", namespace)
	}

	if err := srv.userCache.WriteResource(ctx, namespace, userID, out); err != nil {
		srv.log(ctx).Warn("Plan cache write failed",
			slog.String("namespace", namespace), slog.Any("error", err))
	}

	return true, nil
}

// GenerateDietPlan asks the backend for a fresh diet plan under the extended
// timeout and replaces the cached copy.
func (srv *planService) GenerateDietPlan(ctx context.Context) (*entity.DietPlan, error) {
	var plan entity.DietPlan
	if err := srv.generatePlan(ctx, nsDietPlan, "/diet-plans/generate", &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

// GenerateWorkoutPlan asks the backend for a fresh workout plan under the
// extended timeout and replaces the cached copy.
func (srv *planService) GenerateWorkoutPlan(ctx context.Context) (*entity.WorkoutPlan, error) {
	var plan entity.WorkoutPlan
	if err := srv.generatePlan(ctx, nsWorkoutPlan, "/workout-plans/generate", &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (srv *planService) generatePlan(ctx context.Context, namespace, endpoint string, out any) error {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	srv.log(ctx).Info("Generating plan",
		slog.String("namespace", namespace), slog.String("user_id", userID))

	result, err := srv.api.Post(ctx, endpoint, nil, service.WithTimeout(srv.cfg.API.LongTimeout))
	if err != nil {
		return errors.Wrapf(err, "generate %s", namespace)
	}

	if err := result.Decode(out); err != nil {
		return errors.Wrapf(err, "decode generated %s", namespace)
	}

	if err := srv.userCache.WriteResource(ctx, namespace, userID, out); err != nil {
		srv.log(ctx).Warn("Plan cache write failed",
			slog.String("namespace", namespace), slog.Any("error", err))
	}

	return nil
}

// SharePlanQR renders a QR code other devices can scan to import a plan.
func (srv *planService) SharePlanQR(ctx context.Context, planType string) ([]byte, error) {
	userID, err := srv.userCache.GetCurrentUserID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read user id")
	}
	if userID == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	png, err := srv.qr.GeneratePlanShareQR(userID, planType)
	if err != nil {
		return nil, errors.Wrap(err, "render share QR")
	}

	return png, nil
}
