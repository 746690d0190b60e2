package util

import (
	"context"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"
)

// ReferenceCache интерфейс для кеша справочников в Redis
// Используется для dependency injection и упрощения тестирования
type ReferenceCache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	SetCountries(ctx context.Context, countries []entity.Country, ttl time.Duration) error
	GetCountries(ctx context.Context) ([]entity.Country, error)
	Invalidate(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
