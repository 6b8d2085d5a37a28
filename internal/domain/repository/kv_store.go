// Package repository defines the persistence contracts the rest of the
// application depends on, keeping infrastructure choices out of the domain.
package repository

import (
	"context"

	"primeform/internal/errors"
)

// ErrKeyNotFound is returned by Get when no value exists for a key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the device-local persistence primitive: an asynchronous
// string key-value store, mirroring what the host platform offers. A Set must
// return only once the write is durable, so callers can read their own writes
// immediately without a settling delay.
type KeyValueStore interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
