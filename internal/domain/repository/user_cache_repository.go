// Package repository defines the persistence contracts the rest of the
// application depends on.
package repository

import (
	"context"
)

// UserCacheRepository guarantees that locally persisted data never leaks
// across user identities on a shared device. Every read re-validates the
// entry's ownership marker; mismatches are discarded, not served.
type UserCacheRepository interface {
	// SetCurrentUserID commits id as the active identity. It returns only
	// after the write is durable and read-back verified.
	SetCurrentUserID(ctx context.Context, id string) error

	// GetCurrentUserID returns the active identity, or empty when anonymous.
	GetCurrentUserID(ctx context.Context) (string, error)

	// ClearCurrentUserID empties the identity slot. Idempotent.
	ClearCurrentUserID(ctx context.Context) error

	// UserCacheKey derives the storage key for a logical resource owned by
	// userID. Deterministic; distinct user ids never collide.
	UserCacheKey(logicalName, userID string) string

	// WriteResource persists v under the namespaced key for (logicalName,
	// userID), wrapped in an ownership envelope.
	WriteResource(ctx context.Context, logicalName, userID string, v any) error

	// ReadResource loads a previously written resource into out. It reports
	// false on a miss, and silently purges entries whose ownership marker
	// does not match userID.
	ReadResource(ctx context.Context, logicalName, userID string, out any) (bool, error)

	// InvalidateResource drops one namespaced entry.
	InvalidateResource(ctx context.Context, logicalName, userID string) error

	// ValidateCachedData reports whether a stored payload's ownership marker
	// matches userID.
	ValidateCachedData(raw []byte, userID string) bool

	// CleanupOrphanedCache purges entries in known namespaces that do not
	// belong to newUserID. Runs at login.
	CleanupOrphanedCache(ctx context.Context, newUserID string) error

	// ValidateCacheOnLogin re-validates every namespaced entry for userID and
	// drops mismatches. Runs after the identity slot is committed.
	ValidateCacheOnLogin(ctx context.Context, userID string) error

	// ClearUserCache purges every namespaced entry for userID. Runs at logout.
	ClearUserCache(ctx context.Context, userID string) error
}
