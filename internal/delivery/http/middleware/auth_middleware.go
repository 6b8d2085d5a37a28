package middleware

import (
	"strings"

	"primeform/config"
	"primeform/internal/delivery/http/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is where Authenticate stores the caller's id on the echo
// context for handlers to read.
const userIDContextKey = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate validates the bearer token and stores the caller's user id on
// the echo context. Its rejection message is deliberately distinct from the
// tolerated guard message, so clients escalate instead of treating the
// response as a soft absence.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_CREDENTIAL", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_CREDENTIAL", "Invalid token format, must be Bearer token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return []byte(m.cfg.DevServer.Secret), nil
		})
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "INVALID_CREDENTIAL", "Invalid or expired token")
		}

		userID, err := token.Claims.GetSubject()
		if err != nil || userID == "" {
			return response.Unauthorized(c, "INVALID_CREDENTIAL", "User ID missing from token")
		}

		c.Set(userIDContextKey, userID)

		return next(c)
	}
}

// UserID returns the authenticated caller's id set by Authenticate.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDContextKey).(string)

	return userID
}
