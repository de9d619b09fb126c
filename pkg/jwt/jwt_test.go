package jwt

import (
	"testing"
	"time"

	"library-lending/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newService("test-secret")

	token, tokenID, err := svc.GenerateAccessToken(9, "alice", 3)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, 3, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestJWTService_RefreshTokenType(t *testing.T) {
	svc := newService("test-secret")

	token, _, err := svc.GenerateRefreshToken(9, "alice", 3)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, _, err := newService("secret-a").GenerateAccessToken(9, "alice", 3)
	require.NoError(t, err)

	_, err = newService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}
