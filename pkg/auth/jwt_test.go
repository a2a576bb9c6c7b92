package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTManager_Validation(t *testing.T) {
	assert.Panics(t, func() { NewJWTManager(nil) })
	assert.Panics(t, func() { NewJWTManager(&JWTConfig{}) })
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(DefaultJWTConfig("test-secret"))

	token, err := m.GenerateToken("u1", "Alice", "S")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Alice", claims.FirstName)
	assert.Equal(t, "S", claims.LastName)
	assert.Equal(t, "Alice S", claims.DisplayName())
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m1 := NewJWTManager(DefaultJWTConfig("secret-one"))
	m2 := NewJWTManager(DefaultJWTConfig("secret-two"))

	token, err := m1.GenerateToken("u1", "Alice", "S")
	require.NoError(t, err)

	_, err = m2.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.TokenTTL = -time.Minute
	m := NewJWTManager(cfg)

	token, err := m.GenerateToken("u1", "Alice", "S")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := NewJWTManager(DefaultJWTConfig("test-secret"))
	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}
