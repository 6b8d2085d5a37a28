package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenDecoder_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret")
	require.NoError(t, err)

	token, err := issuer.Issue("user-123", time.Hour)
	require.NoError(t, err)

	decoder := NewTokenDecoder()
	assert.Equal(t, "user-123", decoder.UserIDFromToken(token))
}

func TestTokenDecoder_MalformedTokenYieldsEmptyID(t *testing.T) {
	decoder := NewTokenDecoder()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "definitely-not-a-token"},
		{name: "two segments", token: "abc.def"},
		{name: "garbage payload", token: "eyJhbGciOiJIUzI1NiJ9.%%%%.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, decoder.UserIDFromToken(tt.token))
		})
	}
}

func TestTokenDecoder_TokenWithoutSubject(t *testing.T) {
	// A structurally valid token whose payload has no sub claim.
	// header {"alg":"none"} . payload {"iat":1} . empty signature
	token := "eyJhbGciOiJub25lIn0.eyJpYXQiOjF9."

	decoder := NewTokenDecoder()
	assert.Empty(t, decoder.UserIDFromToken(token))
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("")
	assert.Error(t, err)
}
