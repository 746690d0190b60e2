package service

import (
	"context"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

// Viewer описывает аутентифицированного пользователя из JWT.
// nil-viewer - анонимный запрос: для гейтинга он равен simple.
type Viewer struct {
	UserID   uuid.UUID
	Username string
	Status   string // pro или simple
}

// CanWatch сообщает, доступен ли зрителю фильм с данным статусом.
// pro-фильм требует pro-подписку, simple доступен всем.
func (v *Viewer) CanWatch(movieStatus string) bool {
	if movieStatus != entity.StatusPro {
		return true
	}
	return v != nil && v.Status == entity.StatusPro
}

type CatalogServiceInterface interface {
	ListMovies(ctx context.Context, filter entity.MovieFilter) (*entity.MovieListResponse, error)
	GetMovieDetail(ctx context.Context, id uuid.UUID, viewer *Viewer) (*entity.MovieDetail, error)

	ListCategories(ctx context.Context, page, pageSize int) (*entity.CategoryListResponse, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListGenres(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) (*entity.GenreListResponse, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	ListCountries(ctx context.Context) ([]entity.Country, error)
	GetCountry(ctx context.Context, id uuid.UUID) (*entity.Country, error)
	ListDirectors(ctx context.Context) ([]entity.Director, error)
	GetDirector(ctx context.Context, id uuid.UUID) (*entity.Director, error)
	ListActors(ctx context.Context) ([]entity.Actor, error)
	GetActor(ctx context.Context, id uuid.UUID) (*entity.Actor, error)
}

type EngagementServiceInterface interface {
	CreateRating(ctx context.Context, viewer Viewer, req *entity.CreateRatingRequest) (*entity.Rating, error)
	CreateReview(ctx context.Context, viewer Viewer, req *entity.CreateReviewRequest) (*entity.Review, error)
	CreateReviewLike(ctx context.Context, viewer Viewer, req *entity.CreateReviewLikeRequest) (*entity.ReviewLike, error)
	DeleteReviewLike(ctx context.Context, viewer Viewer, likeID uuid.UUID) error
	ListReviewLikes(ctx context.Context, viewer Viewer) ([]entity.ReviewLike, error)
	GetFavorites(ctx context.Context, viewer Viewer) (*entity.Favorite, error)
	AddFavoriteItem(ctx context.Context, viewer Viewer, req *entity.CreateFavoriteItemRequest) (*entity.FavoriteItem, error)
	RemoveFavoriteItem(ctx context.Context, viewer Viewer, itemID uuid.UUID) error
	GetHistory(ctx context.Context, viewer Viewer) ([]entity.HistoryEntry, error)
	AppendHistory(ctx context.Context, viewer Viewer, req *entity.CreateHistoryRequest) (*entity.HistoryEntry, error)
}
