package repository

import (
	"context"
	"errors"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// engagementRepository пишет активность в PostgreSQL через GORM.
// Уникальные индексы на парах (user,movie) и (user,review) - последний
// рубеж против гонок параллельных запросов: gorm.ErrDuplicatedKey
// транслируется в ErrDuplicateKey (требует TranslateError при gorm.Open).
type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository создает новый репозиторий активности
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// CreateRating сохраняет оценку. Повторная оценка того же фильма
// тем же пользователем упирается в уникальный индекс.
func (r *engagementRepository) CreateRating(ctx context.Context, rating *entity.Rating) error {
	result := r.db.WithContext(ctx).Create(rating)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	return nil
}

// CreateReview сохраняет отзыв
func (r *engagementRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	result := r.db.WithContext(ctx).Create(review)
	return result.Error
}

// HasReview проверяет, есть ли у пользователя отзыв на фильм.
// Используется только при включенной дедупликации отзывов.
func (r *engagementRepository) HasReview(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetReview получает отзыв по ID
func (r *engagementRepository) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	result := r.db.WithContext(ctx).First(&review, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, result.Error
	}

	return &review, nil
}

// CreateReviewLike сохраняет лайк отзыва
func (r *engagementRepository) CreateReviewLike(ctx context.Context, like *entity.ReviewLike) error {
	result := r.db.WithContext(ctx).Create(like)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	return nil
}

// DeleteReviewLike удаляет лайк. Лайк удаляется только владельцем,
// чужой лайк выглядит как несуществующий.
func (r *engagementRepository) DeleteReviewLike(ctx context.Context, userID, likeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", likeID, userID).
		Delete(&entity.ReviewLike{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReviewLikes возвращает лайки пользователя
func (r *engagementRepository) ListReviewLikes(ctx context.Context, userID uuid.UUID) ([]entity.ReviewLike, error) {
	var likes []entity.ReviewLike
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// GetOrCreateFavorite возвращает список избранного пользователя,
// создавая его при первом обращении. Гонка двух параллельных созданий
// разрешается уникальным индексом по user_id и повторным чтением.
func (r *engagementRepository) GetOrCreateFavorite(ctx context.Context, userID uuid.UUID) (*entity.Favorite, error) {
	var favorite entity.Favorite
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Movie").
		First(&favorite, "user_id = ?", userID).Error
	if err == nil {
		return &favorite, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite = entity.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Параллельный запрос успел создать список раньше
			var existing entity.Favorite
			if err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Movie").
				First(&existing, "user_id = ?", userID).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &favorite, nil
}

// CreateFavoriteItem добавляет фильм в список избранного
func (r *engagementRepository) CreateFavoriteItem(ctx context.Context, item *entity.FavoriteItem) error {
	result := r.db.WithContext(ctx).Create(item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	return nil
}

// DeleteFavoriteItem удаляет фильм из списка. Элемент чужого списка
// выглядит как несуществующий.
func (r *engagementRepository) DeleteFavoriteItem(ctx context.Context, favoriteID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND favorite_id = ?", itemID, favoriteID).
		Delete(&entity.FavoriteItem{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
