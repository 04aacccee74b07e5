package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() JWTConfig {
	return JWTConfig{
		Secret:      "test-secret-test-secret-test-sec",
		ExpiryHours: 72,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	config := jwtTestConfig()

	token, expiresAt, err := GenerateSessionToken("user-1", "admin", config)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), expiresAt, time.Minute)

	claims, err := ParseSessionToken(token, config)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateSessionToken("user-1", "user", jwtTestConfig())
	require.NoError(t, err)

	_, err = ParseSessionToken(token, JWTConfig{Secret: "a-different-secret-entirely!!", ExpiryHours: 72})
	require.Error(t, err)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("not.a.token", jwtTestConfig())
	require.Error(t, err)
}
