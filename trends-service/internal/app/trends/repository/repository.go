package repository

import (
	"context"

	"kinopark/trends-service/internal/app/trends/entity"
)

// TrendingRepository хранит рейтинг популярности фильмов
type TrendingRepository interface {
	IncrementScore(ctx context.Context, movieID string, delta float64) error
	TopMovies(ctx context.Context, limit int) ([]entity.TrendingMovie, error)
	TrimToTop(ctx context.Context, keep int) (int64, error)
	Close() error
}

// TokenCleanupRepository удаляет истекшие токены из базы auth-service
type TokenCleanupRepository interface {
	CleanupExpiredTokens(ctx context.Context) error
}
