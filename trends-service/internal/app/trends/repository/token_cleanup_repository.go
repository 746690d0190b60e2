package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kinopark/pkg/metrics"
)

type tokenCleanupRepository struct {
	db *pgxpool.Pool
}

// NewTokenCleanupRepository подключается к PostgreSQL auth-service.
// Таблицы refresh_tokens, revoked_tokens и blacklisted_tokens
// принадлежат auth, trends их только чистит по expires_at.
func NewTokenCleanupRepository(ctx context.Context, dsn string) (TokenCleanupRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to auth database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping auth database: %w", err)
	}

	return &tokenCleanupRepository{db: pool}, nil
}

// CleanupExpiredTokens удаляет истекшие токены из всех трех таблиц
func (r *tokenCleanupRepository) CleanupExpiredTokens(ctx context.Context) error {
	for _, table := range []string{"refresh_tokens", "revoked_tokens", "blacklisted_tokens"} {
		timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, table)
		_, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE expires_at < $1`, table), time.Now())
		timer.ObserveDuration()
		if err != nil {
			metrics.RecordDbError(serviceName, metrics.DbOpDelete)
			return fmt.Errorf("failed to cleanup expired tokens in %s: %w", table, err)
		}
	}

	return nil
}
