package auth

import (
	"context"

	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
)

// credentialKey is the storage slot for the bearer token. It is deliberately
// not user-namespaced: at most one credential exists on a device, and it is
// cleared atomically with the current-user id on logout.
const credentialKey = "auth_token"

type credentialStore struct {
	store repository.KeyValueStore
}

// NewCredentialStore is the constructor for credentialStore.
func NewCredentialStore(store repository.KeyValueStore) service.CredentialStore {
	return &credentialStore{store: store}
}

// Token returns the stored credential, or empty when none exists.
func (c *credentialStore) Token(ctx context.Context) (string, error) {
	token, err := c.store.Get(ctx, credentialKey)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return "", nil
		}

		return "", errors.Wrap(err, "read credential")
	}

	return token, nil
}

// SetToken persists the credential.
func (c *credentialStore) SetToken(ctx context.Context, token string) error {
	return errors.Wrap(c.store.Set(ctx, credentialKey, token), "persist credential")
}

// ClearToken removes the credential. Idempotent.
func (c *credentialStore) ClearToken(ctx context.Context) error {
	return errors.Wrap(c.store.Delete(ctx, credentialKey), "clear credential")
}
