package repository

import (
	"context"
	"errors"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository создает новый репозиторий фильмов
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// List возвращает страницу фильмов по фильтру вместе с общим количеством.
// Фильтры по стране, жанру и актеру идут через join-таблицы M2M.
func (r *movieRepository) List(ctx context.Context, filter entity.MovieFilter) ([]entity.Movie, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Movie{})

	if filter.CountryID != nil {
		query = query.Joins("JOIN movie_countries mc ON mc.movie_id = movies.id").
			Where("mc.country_id = ?", *filter.CountryID)
	}
	if filter.GenreID != nil {
		query = query.Joins("JOIN movie_genres mg ON mg.movie_id = movies.id").
			Where("mg.genre_id = ?", *filter.GenreID)
	}
	if filter.ActorID != nil {
		query = query.Joins("JOIN movie_actors ma ON ma.movie_id = movies.id").
			Where("ma.actor_id = ?", *filter.ActorID)
	}
	if filter.Status != "" {
		query = query.Where("movies.status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("movies.name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Distinct("movies.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Ordering {
	case "year":
		query = query.Order("movies.year ASC")
	case "-year":
		query = query.Order("movies.year DESC")
	default:
		query = query.Order("movies.created_at DESC")
	}

	offset := (filter.Page - 1) * filter.PageSize

	var movies []entity.Movie
	err := query.Distinct().
		Preload("Countries").
		Preload("Genres").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// GetByID получает фильм без связанных сущностей
func (r *movieRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	var movie entity.Movie
	result := r.db.WithContext(ctx).First(&movie, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, result.Error
	}

	return &movie, nil
}

// GetDetail получает фильм со всеми связанными сущностями для детальной карточки
func (r *movieRepository) GetDetail(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	var movie entity.Movie
	result := r.db.WithContext(ctx).
		Preload("Countries").
		Preload("Genres").
		Preload("Directors").
		Preload("Actors").
		Preload("Actors.Images").
		Preload("Videos").
		Preload("Frames").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at DESC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at ASC")
		}).
		First(&movie, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, result.Error
	}

	return &movie, nil
}

// AverageRating считает средний балл и число оценок на стороне БД.
// Среднее округляется до 2 знаков, без оценок возвращается 0.
func (r *movieRepository) AverageRating(ctx context.Context, movieID uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}

	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("COALESCE(ROUND(AVG(stars)::numeric, 2), 0) AS avg, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Avg, row.Count, nil
}
