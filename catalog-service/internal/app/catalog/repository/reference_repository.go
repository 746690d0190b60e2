package repository

import (
	"context"
	"errors"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository создает новый репозиторий справочников
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// ListCategories возвращает страницу категорий с жанрами
func (r *referenceRepository) ListCategories(ctx context.Context, page, pageSize int) ([]entity.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// GetCategory получает категорию с жанрами
func (r *referenceRepository) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	result := r.db.WithContext(ctx).Preload("Genres").First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return &category, nil
}

// ListGenres возвращает страницу жанров, опционально внутри одной категории
func (r *referenceRepository) ListGenres(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]entity.Genre, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Genre{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var genres []entity.Genre
	err := query.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}

// GetGenre получает жанр со списком его фильмов
func (r *referenceRepository) GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	var genre entity.Genre
	result := r.db.WithContext(ctx).Preload("Movies").First(&genre, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, result.Error
	}

	return &genre, nil
}

// ListCountries возвращает все страны
func (r *referenceRepository) ListCountries(ctx context.Context) ([]entity.Country, error) {
	var countries []entity.Country
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// GetCountry получает страну со списком ее фильмов
func (r *referenceRepository) GetCountry(ctx context.Context, id uuid.UUID) (*entity.Country, error) {
	var country entity.Country
	result := r.db.WithContext(ctx).Preload("Movies").First(&country, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, result.Error
	}

	return &country, nil
}

// ListDirectors возвращает всех режиссеров
func (r *referenceRepository) ListDirectors(ctx context.Context) ([]entity.Director, error) {
	var directors []entity.Director
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&directors).Error; err != nil {
		return nil, err
	}
	return directors, nil
}

// GetDirector получает режиссера со списком его фильмов
func (r *referenceRepository) GetDirector(ctx context.Context, id uuid.UUID) (*entity.Director, error) {
	var director entity.Director
	result := r.db.WithContext(ctx).Preload("Movies").First(&director, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDirectorNotFound
		}
		return nil, result.Error
	}

	return &director, nil
}

// ListActors возвращает всех актеров
func (r *referenceRepository) ListActors(ctx context.Context) ([]entity.Actor, error) {
	var actors []entity.Actor
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}

// GetActor получает актера с фильмами и дополнительными фото
func (r *referenceRepository) GetActor(ctx context.Context, id uuid.UUID) (*entity.Actor, error) {
	var actor entity.Actor
	result := r.db.WithContext(ctx).Preload("Movies").Preload("Images").First(&actor, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, result.Error
	}

	return &actor, nil
}
