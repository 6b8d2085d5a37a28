// Package entity contains the core business objects of the project.
package entity

// SessionState describes where the identity lifecycle currently stands.
// The machine cycles Anonymous -> Authenticating -> Active -> LoggingOut ->
// Anonymous across app sessions; there is no terminal state.
type SessionState string

const (
	SessionAnonymous      SessionState = "anonymous"
	SessionAuthenticating SessionState = "authenticating"
	SessionActive         SessionState = "active"
	SessionLoggingOut     SessionState = "logging_out"
)

// Session is the client-side view of the signed-in identity.
type Session struct {
	State  SessionState `json:"state"`
	UserID string       `json:"userId"` // Empty unless State is Active.
}
