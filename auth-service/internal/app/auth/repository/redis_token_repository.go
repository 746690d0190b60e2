package repository

import (
	"context"
	"fmt"
	"time"

	"kinopark/auth-service/internal/app/auth/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisTokenRepository - основное хранилище токенов.
// Redis общий для всех инстансов auth-service, поэтому отзыв токена
// виден любому инстансу, который обслужит следующий refresh.
// TTL ключей совпадает со сроком жизни токена - чистка не нужна.
type redisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository создает новый Redis репозиторий для токенов
func NewRedisTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client}
}

func refreshKey(token string) string {
	return fmt.Sprintf("refresh_token:%s", token)
}

func revokedKey(token string) string {
	return fmt.Sprintf("revoked_token:%s", token)
}

func userTokensKey(userID string) string {
	return fmt.Sprintf("user_tokens:%s", userID)
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// SaveRefreshToken сохраняет refresh токен с TTL до его истечения
func (r *redisTokenRepository) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}

	if err := r.client.Set(ctx, refreshKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token to redis: %w", err)
	}

	// Множество токенов пользователя нужно для DeleteUserRefreshTokens
	key := userTokensKey(userID.String())
	if err := r.client.SAdd(ctx, key, token).Err(); err != nil {
		return fmt.Errorf("failed to add token to user tokens set: %w", err)
	}
	r.client.Expire(ctx, key, ttl)

	return nil
}

// GetRefreshToken получает информацию о refresh токене из Redis
func (r *redisTokenRepository) GetRefreshToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	userIDStr, err := r.client.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return nil, ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token from redis: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in redis: %w", err)
	}

	ttl, err := r.client.TTL(ctx, refreshKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get token ttl: %w", err)
	}

	return &entity.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// DeleteRefreshToken удаляет конкретный refresh токен
func (r *redisTokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	userIDStr, err := r.client.Get(ctx, refreshKey(token)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to get user id for token: %w", err)
	}

	if err := r.client.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token from redis: %w", err)
	}

	if userIDStr != "" {
		r.client.SRem(ctx, userTokensKey(userIDStr), token)
	}

	return nil
}

// DeleteUserRefreshTokens удаляет все refresh токены пользователя
func (r *redisTokenRepository) DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	key := userTokensKey(userID.String())

	tokens, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get user tokens: %w", err)
	}

	for _, token := range tokens {
		r.client.Del(ctx, refreshKey(token))
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete user tokens set: %w", err)
	}

	return nil
}

// RevokeRefreshToken помечает токен отозванным до его естественного истечения
// и удаляет его из активных
func (r *redisTokenRepository) RevokeRefreshToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Токен уже истек - refresh с ним и так не пройдет
		return r.DeleteRefreshToken(ctx, token)
	}

	if err := r.client.Set(ctx, revokedKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark token revoked: %w", err)
	}

	return r.DeleteRefreshToken(ctx, token)
}

// AddToBlacklist помещает access токен в черный список до его истечения
func (r *redisTokenRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Токен уже истек, валидацию он и так не пройдет
		return nil
	}

	if err := r.client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

// IsBlacklisted проверяет, находится ли access токен в черном списке
func (r *redisTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	exists, err := r.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if token is blacklisted: %w", err)
	}

	return exists > 0, nil
}

// IsRevoked проверяет, находится ли токен в множестве отозванных
func (r *redisTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := r.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return exists > 0, nil
}

// CleanupExpiredTokens в Redis не нужен - ключи истекают по TTL.
// Метод оставлен для совместимости интерфейса.
func (r *redisTokenRepository) CleanupExpiredTokens(ctx context.Context) error {
	return nil
}
