package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "moviefan", "pro")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "moviefan", claims.Username)
	assert.Equal(t, "pro", claims.Status)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "moviefan", "simple")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_ValidateToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	other := NewJWTManager("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "moviefan", "simple")
	require.NoError(t, err)

	// Подпись чужим ключом - ошибка подписи, не истечения
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateToken_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	_, err := manager.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_GenerateRefreshToken_Unique(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	first, err := manager.GenerateRefreshToken()
	require.NoError(t, err)
	second, err := manager.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
