// Package service defines the contracts for domain services.
package service

import (
	"context"
	"time"
)

// TokenDecoder reads the user identifier embedded in an identity token.
// The client only reads the payload; it never verifies the signature, which
// is the server's job on each request.
type TokenDecoder interface {
	// UserIDFromToken returns the embedded user identifier, or an empty
	// string when the token is malformed. Fail-soft: it never errors,
	// because a malformed token must not crash the caller.
	UserIDFromToken(token string) string
}

// TokenIssuer mints signed identity tokens. Only the development stub server
// and tests issue tokens; the production backend owns this in real use.
type TokenIssuer interface {
	Issue(userID string, ttl time.Duration) (string, error)
}

// AuthInvalidator purges local identity state after the Request Coordinator
// observes an unrecoverable 401. Implementations must be safe to call when
// the session is already anonymous.
type AuthInvalidator interface {
	InvalidateAuth(ctx context.Context)
}

// CredentialStore manages the persisted bearer credential. The identity
// token lives here from login until logout or invalidation.
type CredentialStore interface {
	// Token returns the stored credential, or empty when none exists.
	Token(ctx context.Context) (string, error)

	// SetToken persists the credential.
	SetToken(ctx context.Context, token string) error

	// ClearToken removes the credential. Idempotent.
	ClearToken(ctx context.Context) error
}
