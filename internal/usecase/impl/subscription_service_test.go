package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primeform/internal/domain/entity"
)

func TestSubscriptionService_AbsentYieldsFreeTier(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	fixtures.api.route("GET", "/subscriptions/current", absentResult("Not authorized to access this route"), nil)
	svc := NewSubscriptionService(fixtures.api, fixtures.userCache, fixtures.logger)

	sub, err := svc.GetSubscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "free", sub.Plan)
	assert.True(t, sub.IsActive)
	assert.Nil(t, sub.RenewsAt)
}

func TestSubscriptionService_IsCacheThrough(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	renews := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	fixtures.api.route("GET", "/subscriptions/current", okResult(t, &entity.Subscription{
		ID: "sub-1", UserID: "user-1", Plan: "monthly", IsActive: true, RenewsAt: &renews,
	}), nil)
	svc := NewSubscriptionService(fixtures.api, fixtures.userCache, fixtures.logger)
	ctx := context.Background()

	first, err := svc.GetSubscription(ctx)
	require.NoError(t, err)
	assert.Equal(t, "monthly", first.Plan)

	second, err := svc.GetSubscription(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, fixtures.api.callCount("GET", "/subscriptions/current"))
}
