// Package auth provides concrete implementations for authentication-related
// domain services on the client side.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"primeform/internal/domain/service"
)

// tokenDecoder reads the user id out of a bearer token without verifying the
// signature. Authenticity is the server's job on every request; the client
// only needs the embedded identifier to namespace its caches.
type tokenDecoder struct {
	parser *jwt.Parser
}

// NewTokenDecoder is the constructor for tokenDecoder.
func NewTokenDecoder() service.TokenDecoder {
	return &tokenDecoder{parser: jwt.NewParser()}
}

// UserIDFromToken returns the embedded user identifier, or an empty string
// when the token is malformed. It never errors: a damaged stored token must
// degrade to an anonymous session, not a crash.
func (d *tokenDecoder) UserIDFromToken(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}

	return sub
}
