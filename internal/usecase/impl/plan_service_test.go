package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primeform/config"
	"primeform/internal/domain/entity"
	"primeform/internal/infra/qrcode"
	"primeform/internal/usecase"
)

func createTestPlanService(t *testing.T) (*serviceFixtures, usecase.PlanUsecase) {
	t.Helper()

	fixtures := createServiceFixtures(t)
	cfg := &config.Config{}
	cfg.API.Timeout = 15 * time.Second
	cfg.API.LongTimeout = 2 * time.Minute
	qr := qrcode.NewQRCodeService(256, "M")

	return fixtures, NewPlanService(fixtures.api, fixtures.userCache, qr, cfg, fixtures.logger)
}

func TestPlanService_GetDietPlanAbsent(t *testing.T) {
	t.Parallel()

	fixtures, svc := createTestPlanService(t)
	fixtures.signIn(t, "user-1")
	fixtures.api.route("GET", "/diet-plans/current", absentResult("No active diet plan found"), nil)

	plan, present, err := svc.GetDietPlan(context.Background())
	require.NoError(t, err, "a missing plan is a normal state, not a failure")
	assert.False(t, present)
	assert.Nil(t, plan)
}

func TestPlanService_GetWorkoutPlanIsCacheThrough(t *testing.T) {
	t.Parallel()

	fixtures, svc := createTestPlanService(t)
	fixtures.signIn(t, "user-1")
	fixtures.api.route("GET", "/workout-plans/current",
		okResult(t, &entity.WorkoutPlan{ID: "wp-1", UserID: "user-1"}), nil)
	ctx := context.Background()

	plan, present, err := svc.GetWorkoutPlan(ctx)
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, "wp-1", plan.ID)

	_, present, err = svc.GetWorkoutPlan(ctx)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 1, fixtures.api.callCount("GET", "/workout-plans/current"))
}

func TestPlanService_GenerateDietPlanUsesExtendedTimeout(t *testing.T) {
	t.Parallel()

	fixtures, svc := createTestPlanService(t)
	fixtures.signIn(t, "user-1")
	fixtures.api.route("POST", "/diet-plans/generate",
		okResult(t, &entity.DietPlan{ID: "dp-2", UserID: "user-1"}), nil)
	ctx := context.Background()

	plan, err := svc.GenerateDietPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dp-2", plan.ID)
	assert.Equal(t, 2*time.Minute, fixtures.api.lastCall(t).Options.Timeout,
		"generation must run under the extended timeout")

	// The freshly generated plan replaces any cached copy.
	cached, present, err := svc.GetDietPlan(ctx)
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, "dp-2", cached.ID)
	assert.Zero(t, fixtures.api.callCount("GET", "/diet-plans/current"))
}

func TestPlanService_SharePlanQR(t *testing.T) {
	t.Parallel()

	fixtures, svc := createTestPlanService(t)
	fixtures.signIn(t, "user-1")
	ctx := context.Background()

	png, err := svc.SharePlanQR(ctx, "workout")
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = svc.SharePlanQR(ctx, "yoga")
	assert.Error(t, err, "unknown plan types must be rejected")
}
