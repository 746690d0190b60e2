package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepo(t *testing.T) (TokenRepository, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisTokenRepository(client), mr, client
}

// ==================== SaveRefreshToken Tests ====================

func TestRedisTokenRepository_SaveAndGet(t *testing.T) {
	// Arrange
	repo, _, _ := setupRedisRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	// Act
	err := repo.SaveRefreshToken(ctx, userID, "token-1", expiresAt)
	require.NoError(t, err)

	stored, err := repo.GetRefreshToken(ctx, "token-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, "token-1", stored.Token)
	assert.WithinDuration(t, expiresAt, stored.ExpiresAt, 5*time.Second)
}

func TestRedisTokenRepository_SaveExpired(t *testing.T) {
	repo, _, _ := setupRedisRepo(t)

	err := repo.SaveRefreshToken(context.Background(), uuid.New(), "stale", time.Now().Add(-time.Minute))

	assert.Error(t, err)
}

func TestRedisTokenRepository_GetMissing(t *testing.T) {
	repo, _, _ := setupRedisRepo(t)

	stored, err := repo.GetRefreshToken(context.Background(), "no-such-token")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestRedisTokenRepository_ExpiresByTTL(t *testing.T) {
	// Arrange
	repo, mr, _ := setupRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRefreshToken(ctx, uuid.New(), "short-lived", time.Now().Add(time.Minute)))

	// Act: перематываем время в miniredis за срок жизни токена
	mr.FastForward(2 * time.Minute)

	_, err := repo.GetRefreshToken(ctx, "short-lived")

	// Assert
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

// ==================== Revoke Tests ====================

func TestRedisTokenRepository_Revoke_RemovesActiveAndMarksRevoked(t *testing.T) {
	// Arrange
	repo, _, _ := setupRedisRepo(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(time.Hour)
	require.NoError(t, repo.SaveRefreshToken(ctx, uuid.New(), "to-revoke", expiresAt))

	// Act
	require.NoError(t, repo.RevokeRefreshToken(ctx, "to-revoke", expiresAt))

	// Assert
	revoked, err := repo.IsRevoked(ctx, "to-revoke")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = repo.GetRefreshToken(ctx, "to-revoke")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

// Отзыв виден другому инстансу репозитория, подключенному к тому же Redis
func TestRedisTokenRepository_Revoke_VisibleAcrossInstances(t *testing.T) {
	// Arrange
	repoA, mr, _ := setupRedisRepo(t)
	ctx := context.Background()

	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { clientB.Close() })
	repoB := NewRedisTokenRepository(clientB)

	expiresAt := time.Now().Add(time.Hour)
	require.NoError(t, repoA.SaveRefreshToken(ctx, uuid.New(), "shared-token", expiresAt))

	// Act: первый инстанс отзывает токен
	require.NoError(t, repoA.RevokeRefreshToken(ctx, "shared-token", expiresAt))

	// Assert: второй инстанс видит отзыв
	revoked, err := repoB.IsRevoked(ctx, "shared-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisTokenRepository_RevokedMark_ExpiresWithToken(t *testing.T) {
	// Arrange
	repo, mr, _ := setupRedisRepo(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(time.Minute)
	require.NoError(t, repo.SaveRefreshToken(ctx, uuid.New(), "short-revoke", expiresAt))
	require.NoError(t, repo.RevokeRefreshToken(ctx, "short-revoke", expiresAt))

	// Act: после естественного истечения токена отметка об отзыве не нужна
	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsRevoked(ctx, "short-revoke")

	// Assert
	require.NoError(t, err)
	assert.False(t, revoked)
}

// ==================== DeleteUserRefreshTokens Tests ====================

func TestRedisTokenRepository_DeleteUserTokens(t *testing.T) {
	// Arrange
	repo, _, _ := setupRedisRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	require.NoError(t, repo.SaveRefreshToken(ctx, userID, "mine-1", expiresAt))
	require.NoError(t, repo.SaveRefreshToken(ctx, userID, "mine-2", expiresAt))
	require.NoError(t, repo.SaveRefreshToken(ctx, otherID, "theirs", expiresAt))

	// Act
	require.NoError(t, repo.DeleteUserRefreshTokens(ctx, userID))

	// Assert
	_, err := repo.GetRefreshToken(ctx, "mine-1")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
	_, err = repo.GetRefreshToken(ctx, "mine-2")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)

	// Чужой токен не тронут
	stored, err := repo.GetRefreshToken(ctx, "theirs")
	require.NoError(t, err)
	assert.Equal(t, otherID, stored.UserID)
}

// ==================== Blacklist Tests ====================

func TestRedisTokenRepository_Blacklist_AddAndCheck(t *testing.T) {
	// Arrange
	repo, _, _ := setupRedisRepo(t)
	ctx := context.Background()

	// Act
	err := repo.AddToBlacklist(ctx, "access-token", time.Now().Add(15*time.Minute))
	require.NoError(t, err)

	blacklisted, err := repo.IsBlacklisted(ctx, "access-token")

	// Assert
	require.NoError(t, err)
	assert.True(t, blacklisted)

	other, err := repo.IsBlacklisted(ctx, "another-token")
	require.NoError(t, err)
	assert.False(t, other)
}

func TestRedisTokenRepository_Blacklist_ExpiredTokenSkipped(t *testing.T) {
	// Arrange
	repo, _, _ := setupRedisRepo(t)
	ctx := context.Background()

	// Act - истекший токен в черный список не добавляется
	err := repo.AddToBlacklist(ctx, "stale-access", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	blacklisted, err := repo.IsBlacklisted(ctx, "stale-access")

	// Assert
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestRedisTokenRepository_Blacklist_ExpiresWithToken(t *testing.T) {
	// Arrange
	repo, mr, _ := setupRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddToBlacklist(ctx, "short-access", time.Now().Add(time.Minute)))

	// Act - промотка времени за срок жизни access токена
	mr.FastForward(2 * time.Minute)

	blacklisted, err := repo.IsBlacklisted(ctx, "short-access")

	// Assert
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
