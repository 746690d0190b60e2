package mocks

import (
	"context"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMovieRepository - мок репозитория фильмов для unit-тестов
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) List(ctx context.Context, filter entity.MovieFilter) ([]entity.Movie, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetDetail(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieRepository) AverageRating(ctx context.Context, movieID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockReferenceRepository - мок репозитория справочников
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) ListCategories(ctx context.Context, page, pageSize int) ([]entity.Category, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockReferenceRepository) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockReferenceRepository) ListGenres(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]entity.Genre, int64, error) {
	args := m.Called(ctx, categoryID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockReferenceRepository) GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockReferenceRepository) ListCountries(ctx context.Context) ([]entity.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Country), args.Error(1)
}

func (m *MockReferenceRepository) GetCountry(ctx context.Context, id uuid.UUID) (*entity.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Country), args.Error(1)
}

func (m *MockReferenceRepository) ListDirectors(ctx context.Context) ([]entity.Director, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Director), args.Error(1)
}

func (m *MockReferenceRepository) GetDirector(ctx context.Context, id uuid.UUID) (*entity.Director, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Director), args.Error(1)
}

func (m *MockReferenceRepository) ListActors(ctx context.Context) ([]entity.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Actor), args.Error(1)
}

func (m *MockReferenceRepository) GetActor(ctx context.Context, id uuid.UUID) (*entity.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Actor), args.Error(1)
}

// MockEngagementRepository - мок репозитория активности
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) CreateRating(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockEngagementRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockEngagementRepository) HasReview(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockEngagementRepository) CreateReviewLike(ctx context.Context, like *entity.ReviewLike) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteReviewLike(ctx context.Context, userID, likeID uuid.UUID) error {
	args := m.Called(ctx, userID, likeID)
	return args.Error(0)
}

func (m *MockEngagementRepository) ListReviewLikes(ctx context.Context, userID uuid.UUID) ([]entity.ReviewLike, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ReviewLike), args.Error(1)
}

func (m *MockEngagementRepository) GetOrCreateFavorite(ctx context.Context, userID uuid.UUID) (*entity.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Favorite), args.Error(1)
}

func (m *MockEngagementRepository) CreateFavoriteItem(ctx context.Context, item *entity.FavoriteItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteFavoriteItem(ctx context.Context, favoriteID, itemID uuid.UUID) error {
	args := m.Called(ctx, favoriteID, itemID)
	return args.Error(0)
}

// MockHistoryRepository - мок журнала просмотров
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.HistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.HistoryEntry), args.Error(1)
}

// MockReferenceCache - мок Redis-кеша справочников
type MockReferenceCache struct {
	mock.Mock
}

func (m *MockReferenceCache) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	args := m.Called(ctx, categories, ttl)
	return args.Error(0)
}

func (m *MockReferenceCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockReferenceCache) SetCountries(ctx context.Context, countries []entity.Country, ttl time.Duration) error {
	args := m.Called(ctx, countries, ttl)
	return args.Error(0)
}

func (m *MockReferenceCache) GetCountries(ctx context.Context) ([]entity.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Country), args.Error(1)
}

func (m *MockReferenceCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReferenceCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher - мок Kafka-продюсера
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
