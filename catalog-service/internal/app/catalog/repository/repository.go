package repository

import (
	"context"
	"errors"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrCountryNotFound  = errors.New("country not found")
	ErrDirectorNotFound = errors.New("director not found")
	ErrActorNotFound    = errors.New("actor not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrDuplicateKey     = errors.New("duplicate key")
)

// MovieRepository читает фильмы из PostgreSQL
type MovieRepository interface {
	List(ctx context.Context, filter entity.MovieFilter) ([]entity.Movie, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	AverageRating(ctx context.Context, movieID uuid.UUID) (float64, int64, error)
}

// ReferenceRepository читает справочники: категории, жанры, страны,
// режиссеров и актеров
type ReferenceRepository interface {
	ListCategories(ctx context.Context, page, pageSize int) ([]entity.Category, int64, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListGenres(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]entity.Genre, int64, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	ListCountries(ctx context.Context) ([]entity.Country, error)
	GetCountry(ctx context.Context, id uuid.UUID) (*entity.Country, error)
	ListDirectors(ctx context.Context) ([]entity.Director, error)
	GetDirector(ctx context.Context, id uuid.UUID) (*entity.Director, error)
	ListActors(ctx context.Context) ([]entity.Actor, error)
	GetActor(ctx context.Context, id uuid.UUID) (*entity.Actor, error)
}

// EngagementRepository пишет пользовательскую активность:
// оценки, отзывы, лайки, избранное
type EngagementRepository interface {
	CreateRating(ctx context.Context, rating *entity.Rating) error
	CreateReview(ctx context.Context, review *entity.Review) error
	HasReview(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	CreateReviewLike(ctx context.Context, like *entity.ReviewLike) error
	DeleteReviewLike(ctx context.Context, userID, likeID uuid.UUID) error
	ListReviewLikes(ctx context.Context, userID uuid.UUID) ([]entity.ReviewLike, error)
	GetOrCreateFavorite(ctx context.Context, userID uuid.UUID) (*entity.Favorite, error)
	CreateFavoriteItem(ctx context.Context, item *entity.FavoriteItem) error
	DeleteFavoriteItem(ctx context.Context, favoriteID, itemID uuid.UUID) error
}

// HistoryRepository ведет журнал просмотров в MongoDB
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	ListByUser(ctx context.Context, userID string) ([]entity.HistoryEntry, error)
}
