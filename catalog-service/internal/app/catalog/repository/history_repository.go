package repository

import (
	"context"
	"fmt"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type historyRepository struct {
	collection *mongo.Collection
}

// NewHistoryRepository создает новый репозиторий журнала просмотров
// Автоматически создает индексы по user_id и movie_id
func NewHistoryRepository(db *mongo.Database) HistoryRepository {
	collection := db.Collection("history")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "viewed_at", Value: -1}},
			Options: options.Index().SetName("user_viewed_idx"),
		},
		{
			Keys:    bson.D{{Key: "movie_id", Value: 1}},
			Options: options.Index().SetName("movie_id_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Индексы могут уже существовать
		logger.Warn().Err(err).Msg("Failed to create history indexes")
	}

	return &historyRepository{collection: collection}
}

// Append добавляет запись в журнал. Журнал append-only,
// дедупликации нет: каждый просмотр - отдельная запись.
func (r *historyRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	if entry.ViewedAt.IsZero() {
		entry.ViewedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}

	return nil
}

// ListByUser возвращает журнал пользователя, новые записи первыми
func (r *historyRepository) ListByUser(ctx context.Context, userID string) ([]entity.HistoryEntry, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "viewed_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find history entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []entity.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history entries: %w", err)
	}

	return entries, nil
}
