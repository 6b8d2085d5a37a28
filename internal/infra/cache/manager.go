// Package cache implements the per-user cache key manager: it namespaces all
// locally persisted data by the active user identity and guarantees that
// cached data never leaks across users on a shared device.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"primeform/internal/appcontext"
	"primeform/internal/domain/repository"
	"primeform/internal/errors"
)

// currentUserKey is the storage slot holding the active user identifier.
const currentUserKey = "current_user_id"

// keySeparator joins a logical resource name with its owning user id.
const keySeparator = "_"

// Namespaces lists every logical resource the client persists per user.
// Orphan cleanup and logout purges scan exactly this set.
var Namespaces = []string{
	"profile",
	"dietPlan",
	"workoutPlan",
	"completions",
	"subscription",
	"notifications",
}

// ownedEntry wraps every cached payload with its ownership marker. A read
// whose marker does not match the requesting identity is treated as
// orphaned and purged rather than served.
type ownedEntry struct {
	Owner   string          `json:"owner"`
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

type manager struct {
	store  repository.KeyValueStore
	logger *slog.Logger
}

// NewManager is the constructor for the cache key manager.
func NewManager(store repository.KeyValueStore, logger *slog.Logger) repository.UserCacheRepository {
	return &manager{store: store, logger: logger}
}

func (m *manager) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, m.logger)
}

// SetCurrentUserID commits id as the active identity. The store's writes are
// durable before Set returns, and a read-back verifies the slot, so callers
// may run dependent cache validation immediately afterwards.
func (m *manager) SetCurrentUserID(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("user id must not be empty")
	}

	if err := m.store.Set(ctx, currentUserKey, id); err != nil {
		return errors.Wrap(err, "persist current user id")
	}

	stored, err := m.store.Get(ctx, currentUserKey)
	if err != nil {
		return errors.Wrap(err, "verify current user id")
	}
	if stored != id {
		return errors.Errorf("current user id read back as %q, want %q", stored, id)
	}

	return nil
}

func (m *manager) GetCurrentUserID(ctx context.Context) (string, error) {
	id, err := m.store.Get(ctx, currentUserKey)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return "", nil
		}

		return "", errors.Wrap(err, "read current user id")
	}

	return id, nil
}

func (m *manager) ClearCurrentUserID(ctx context.Context) error {
	return errors.Wrap(m.store.Delete(ctx, currentUserKey), "clear current user id")
}

// UserCacheKey derives the storage key for a logical resource owned by
// userID. Same inputs always yield the same key; different user ids never
// collide for the same logical name.
func (m *manager) UserCacheKey(logicalName, userID string) string {
	return logicalName + keySeparator + userID
}

func (m *manager) WriteResource(ctx context.Context, logicalName, userID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "serialize resource")
	}

	entry, err := json.Marshal(ownedEntry{
		Owner:   userID,
		SavedAt: time.Now().UTC(),
		Data:    data,
	})
	if err != nil {
		return errors.Wrap(err, "serialize cache entry")
	}

	key := m.UserCacheKey(logicalName, userID)

	return errors.Wrapf(m.store.Set(ctx, key, string(entry)), "write cache entry %s", key)
}

// ReadResource loads a cached resource into out. Ownership mismatches and
// undecodable entries are resolved internally: the entry is dropped, the
// read reports a miss, and the caller falls back to a network fetch.
func (m *manager) ReadResource(ctx context.Context, logicalName, userID string, out any) (bool, error) {
	key := m.UserCacheKey(logicalName, userID)

	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return false, nil
		}

		return false, errors.Wrapf(err, "read cache entry %s", key)
	}

	if !m.ValidateCachedData([]byte(raw), userID) {
		m.log(ctx).Warn("Dropping cache entry that failed ownership validation",
			slog.String("key", key))
		m.purge(ctx, key)

		return false, nil
	}

	var entry ownedEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		m.purge(ctx, key)

		return false, nil
	}

	if err := json.Unmarshal(entry.Data, out); err != nil {
		m.purge(ctx, key)

		return false, nil
	}

	return true, nil
}

func (m *manager) InvalidateResource(ctx context.Context, logicalName, userID string) error {
	key := m.UserCacheKey(logicalName, userID)

	return errors.Wrapf(m.store.Delete(ctx, key), "invalidate cache entry %s", key)
}

// ValidateCachedData reports whether a stored payload's ownership marker
// matches the given user id.
func (m *manager) ValidateCachedData(raw []byte, userID string) bool {
	var entry ownedEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return false
	}

	return entry.Owner == userID
}

// CleanupOrphanedCache purges entries in known namespaces that do not belong
// to newUserID. Purge failures are logged and swallowed: cache hygiene never
// blocks a login from completing.
func (m *manager) CleanupOrphanedCache(ctx context.Context, newUserID string) error {
	for _, namespace := range Namespaces {
		keys, err := m.store.Keys(ctx, namespace+keySeparator)
		if err != nil {
			m.log(ctx).Warn("Failed to scan cache namespace",
				slog.String("namespace", namespace), slog.Any("error", err))

			continue
		}

		keep := m.UserCacheKey(namespace, newUserID)
		for _, key := range keys {
			if key == keep {
				continue
			}
			m.purge(ctx, key)
		}
	}

	return nil
}

// ValidateCacheOnLogin re-validates every namespaced entry for userID and
// drops mismatches. Runs after the identity slot is committed.
func (m *manager) ValidateCacheOnLogin(ctx context.Context, userID string) error {
	for _, namespace := range Namespaces {
		key := m.UserCacheKey(namespace, userID)

		raw, err := m.store.Get(ctx, key)
		if err != nil {
			continue
		}

		if !m.ValidateCachedData([]byte(raw), userID) {
			m.log(ctx).Warn("Dropping mismatched cache entry at login",
				slog.String("key", key))
			m.purge(ctx, key)
		}
	}

	return nil
}

// ClearUserCache purges every namespaced entry for userID. Runs at logout,
// before the identity slot is cleared.
func (m *manager) ClearUserCache(ctx context.Context, userID string) error {
	for _, namespace := range Namespaces {
		m.purge(ctx, m.UserCacheKey(namespace, userID))
	}

	return nil
}

func (m *manager) purge(ctx context.Context, key string) {
	if err := m.store.Delete(ctx, key); err != nil {
		m.log(ctx).Warn("Failed to purge cache entry",
			slog.String("key", key), slog.Any("error", err))
	}
}
