package repository

import (
	"context"
	"errors"
	"time"

	"kinopark/auth-service/internal/app/auth/entity"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenRepository управляет refresh токенами, множеством отозванных
// refresh токенов и черным списком access токенов. Отозванный токен
// хранится до своего естественного истечения, чтобы revoke был виден
// всем инстансам сервиса (см. redis реализацию).
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	RevokeRefreshToken(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)

	AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)

	CleanupExpiredTokens(ctx context.Context) error
}
