package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName = "catalog-service"

	categoriesCacheKey = "reference:categories"
	countriesCacheKey  = "reference:countries"
)

// RedisClient кеширует редко меняющиеся справочники.
// Кеш вспомогательный: его потеря не влияет на корректность каталога.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
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

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	return r.setJSON(ctx, categoriesCacheKey, categories, ttl)
}

func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.getJSON(ctx, categoriesCacheKey, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *RedisClient) SetCountries(ctx context.Context, countries []entity.Country, ttl time.Duration) error {
	return r.setJSON(ctx, countriesCacheKey, countries, ttl)
}

func (r *RedisClient) GetCountries(ctx context.Context) ([]entity.Country, error) {
	var countries []entity.Country
	if err := r.getJSON(ctx, countriesCacheKey, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Invalidate сбрасывает все кешированные справочники
func (r *RedisClient) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, categoriesCacheKey, countriesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate reference cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "set")
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}

	return nil
}

// getJSON читает ключ из кеша. Отсутствие ключа - не ошибка:
// возвращается nil-значение и вызывающий идет в БД.
func (r *RedisClient) getJSON(ctx context.Context, key string, out interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, key)
			return nil
		}
		metrics.RecordRedisError(serviceName, "get")
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	metrics.RecordCacheHit(serviceName, key)

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return nil
}
