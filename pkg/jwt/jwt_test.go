package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("user-1", "rider@example.com", "passenger")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "rider@example.com", claims.Email)
	assert.Equal(t, "passenger", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateRefreshToken("user-1", "rider@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
	assert.Equal(t, "rider@example.com", claims.Email)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("user-1", "rider@example.com", "passenger")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewService("other-secret", "other-refresh", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken("user-1", "rider@example.com", "admin")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken("user-1", "rider@example.com", "passenger")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.True(t, svc.IsTokenExpired(token))
}
