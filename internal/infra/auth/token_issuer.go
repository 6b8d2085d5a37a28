package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"primeform/internal/domain/service"
)

// tokenIssuer mints HS256 identity tokens. Only the development stub server
// and tests use it; production tokens come from the real backend.
type tokenIssuer struct {
	secret string
}

// NewTokenIssuer is the constructor for tokenIssuer.
func NewTokenIssuer(secret string) (service.TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must be provided")
	}

	return &tokenIssuer{secret: secret}, nil
}

// Issue creates a signed token whose subject is userID.
func (s *tokenIssuer) Issue(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,                     // Subject (who the token is for)
		"iat": time.Now().Unix(),          // Issued At
		"exp": time.Now().Add(ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}
