package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primeform/internal/domain/entity"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/errors"
)

func TestNotificationService_ListIsCacheThrough(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	fixtures.api.route("GET", "/notifications", okResult(t, []*entity.Notification{
		{ID: "n1", Kind: "reminder", Title: "Leg day"},
		{ID: "n2", Kind: "milestone", Title: "7 day streak"},
	}), nil)
	svc := NewNotificationService(fixtures.api, fixtures.userCache, fixtures.logger)
	ctx := context.Background()

	items, err := svc.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	_, err = svc.ListNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fixtures.api.callCount("GET", "/notifications"))
}

func TestNotificationService_MarkReadInvalidatesFeed(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	fixtures.signIn(t, "user-1")
	ctx := context.Background()

	require.NoError(t, fixtures.userCache.WriteResource(ctx, "notifications", "user-1",
		[]*entity.Notification{{ID: "n1", Read: false}}))
	svc := NewNotificationService(fixtures.api, fixtures.userCache, fixtures.logger)

	require.NoError(t, svc.MarkRead(ctx, "n1"))
	assert.Equal(t, 1, fixtures.api.callCount("PATCH", "/notifications/n1/read"))

	var cached []*entity.Notification
	found, err := fixtures.userCache.ReadResource(ctx, "notifications", "user-1", &cached)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNotificationService_RequiresIdentity(t *testing.T) {
	t.Parallel()

	fixtures := createServiceFixtures(t)
	svc := NewNotificationService(fixtures.api, fixtures.userCache, fixtures.logger)

	_, err := svc.ListNotifications(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
}
