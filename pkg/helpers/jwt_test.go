package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testJWT()

	token, exp, err := m.GenerateAccessToken("u1", "officer", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "officer", claims.Role)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestRefreshSecretDoesNotVerifyAccessToken(t *testing.T) {
	m := testJWT()

	token, _, err := m.GenerateAccessToken("u1", "admin", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, _, err := m.GenerateAccessToken("u1", "admin", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := testJWT().ParseAccessToken("not-a-jwt")
	assert.Error(t, err)
}
