package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kinopark/pkg/metrics"
	"kinopark/trends-service/internal/app/trends/entity"
)

const (
	serviceName = "trends-service"

	// trendingKey - sorted set: member movie_id, score накопленный вес
	trendingKey = "trending:movies"
)

type trendingRepository struct {
	client *redis.Client
}

// NewTrendingRepository создает Redis-репозиторий рейтинга трендов
func NewTrendingRepository(addr, password string, db int) (TrendingRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &trendingRepository{client: client}, nil
}

// NewTrendingRepositoryWithClient оборачивает готовый клиент, используется в тестах
func NewTrendingRepositoryWithClient(client *redis.Client) TrendingRepository {
	return &trendingRepository{client: client}
}

func (r *trendingRepository) IncrementScore(ctx context.Context, movieID string, delta float64) error {
	if err := r.client.ZIncrBy(ctx, trendingKey, delta, movieID).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "zincrby")
		return fmt.Errorf("failed to increment trending score: %w", err)
	}
	return nil
}

// TopMovies возвращает limit фильмов с наибольшим счетом, по убыванию
func (r *trendingRepository) TopMovies(ctx context.Context, limit int) ([]entity.TrendingMovie, error) {
	results, err := r.client.ZRevRangeWithScores(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, "zrevrange")
		return nil, fmt.Errorf("failed to read trending ranking: %w", err)
	}

	movies := make([]entity.TrendingMovie, 0, len(results))
	for _, z := range results {
		movieID, ok := z.Member.(string)
		if !ok {
			continue
		}
		movies = append(movies, entity.TrendingMovie{
			MovieID: movieID,
			Score:   z.Score,
		})
	}

	return movies, nil
}

// TrimToTop оставляет keep лучших записей и возвращает число удаленных.
// Рейтинг вспомогательный, поэтому обрезка не требует атомарности
// с инкрементами: потерянный инкремент погрешности не делает.
func (r *trendingRepository) TrimToTop(ctx context.Context, keep int) (int64, error) {
	removed, err := r.client.ZRemRangeByRank(ctx, trendingKey, 0, int64(-keep-1)).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, "zremrangebyrank")
		return 0, fmt.Errorf("failed to trim trending ranking: %w", err)
	}
	return removed, nil
}

func (r *trendingRepository) Close() error {
	return r.client.Close()
}
