package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/catalog-service/internal/app/catalog/repository"
	"kinopark/catalog-service/internal/app/catalog/util"
	"kinopark/pkg/logger"
	"kinopark/pkg/metrics"

	"github.com/google/uuid"
)

// EngagementService пишет пользовательскую активность: оценки, отзывы,
// лайки, избранное, журнал просмотров. Ограничения уникальности
// соблюдаются на уровне БД, поэтому гонки параллельных запросов
// разрешаются детерминированно: ровно одна запись проходит.
type EngagementService struct {
	movieRepo      repository.MovieRepository
	engagementRepo repository.EngagementRepository
	historyRepo    repository.HistoryRepository
	producer       util.MessagePublisher
	dedupReviews   bool
}

// NewEngagementService создает новый сервис активности
func NewEngagementService(
	movieRepo repository.MovieRepository,
	engagementRepo repository.EngagementRepository,
	historyRepo repository.HistoryRepository,
	producer util.MessagePublisher,
	dedupReviews bool,
) *EngagementService {
	return &EngagementService{
		movieRepo:      movieRepo,
		engagementRepo: engagementRepo,
		historyRepo:    historyRepo,
		producer:       producer,
		dedupReviews:   dedupReviews,
	}
}

// CreateRating сохраняет оценку фильма.
// Повторная оценка того же фильма - ErrDuplicateRating.
func (s *EngagementService) CreateRating(ctx context.Context, viewer Viewer, req *entity.CreateRatingRequest) (*entity.Rating, error) {
	if req.Stars < 1 || req.Stars > 10 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 10", ErrValidation)
	}

	if _, err := s.movieRepo.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to verify movie: %w", err)
	}

	rating := &entity.Rating{
		ID:        uuid.New(),
		UserID:    viewer.UserID,
		Username:  viewer.Username,
		MovieID:   req.MovieID,
		Stars:     req.Stars,
		CreatedAt: time.Now(),
	}

	if err := s.engagementRepo.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.RecordEngagementWrite("rating", "duplicate")
			return nil, ErrDuplicateRating
		}
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	metrics.RecordEngagementWrite("rating", "created")
	s.publish(ctx, entity.EngagementEvent{
		EventType: entity.EventRatingCreated,
		MovieID:   req.MovieID.String(),
		UserID:    viewer.UserID.String(),
		Stars:     req.Stars,
		Timestamp: time.Now(),
	})

	return rating, nil
}

// CreateReview сохраняет отзыв. Родительский отзыв обязан принадлежать
// тому же фильму. Запрет повторного отзыва включается конфигурацией.
func (s *EngagementService) CreateReview(ctx context.Context, viewer Viewer, req *entity.CreateReviewRequest) (*entity.Review, error) {
	if _, err := s.movieRepo.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to verify movie: %w", err)
	}

	if req.ParentID != nil {
		parent, err := s.engagementRepo.GetReview(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return nil, fmt.Errorf("%w: parent review does not exist", ErrValidation)
			}
			return nil, fmt.Errorf("failed to get parent review: %w", err)
		}
		if parent.MovieID != req.MovieID {
			return nil, fmt.Errorf("%w: parent review belongs to a different movie", ErrValidation)
		}
	}

	if s.dedupReviews {
		exists, err := s.engagementRepo.HasReview(ctx, viewer.UserID, req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing review: %w", err)
		}
		if exists {
			metrics.RecordEngagementWrite("review", "duplicate")
			return nil, ErrDuplicateReview
		}
	}

	review := &entity.Review{
		ID:        uuid.New(),
		UserID:    viewer.UserID,
		Username:  viewer.Username,
		MovieID:   req.MovieID,
		Text:      req.Text,
		ParentID:  req.ParentID,
		CreatedAt: time.Now(),
	}

	if err := s.engagementRepo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.RecordEngagementWrite("review", "created")
	s.publish(ctx, entity.EngagementEvent{
		EventType: entity.EventReviewCreated,
		MovieID:   req.MovieID.String(),
		UserID:    viewer.UserID.String(),
		Timestamp: time.Now(),
	})

	return review, nil
}

// CreateReviewLike сохраняет лайк отзыва.
// Повторный лайк того же отзыва - ErrDuplicateLike.
func (s *EngagementService) CreateReviewLike(ctx context.Context, viewer Viewer, req *entity.CreateReviewLikeRequest) (*entity.ReviewLike, error) {
	if _, err := s.engagementRepo.GetReview(ctx, req.ReviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to verify review: %w", err)
	}

	like := &entity.ReviewLike{
		ID:        uuid.New(),
		UserID:    viewer.UserID,
		ReviewID:  req.ReviewID,
		CreatedAt: time.Now(),
	}

	if err := s.engagementRepo.CreateReviewLike(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.RecordEngagementWrite("review_like", "duplicate")
			return nil, ErrDuplicateLike
		}
		return nil, fmt.Errorf("failed to create review like: %w", err)
	}

	metrics.RecordEngagementWrite("review_like", "created")
	return like, nil
}

// DeleteReviewLike удаляет лайк владельца. Чужой лайк - ErrNotFound.
func (s *EngagementService) DeleteReviewLike(ctx context.Context, viewer Viewer, likeID uuid.UUID) error {
	if err := s.engagementRepo.DeleteReviewLike(ctx, viewer.UserID, likeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete review like: %w", err)
	}
	return nil
}

// ListReviewLikes возвращает лайки зрителя
func (s *EngagementService) ListReviewLikes(ctx context.Context, viewer Viewer) ([]entity.ReviewLike, error) {
	likes, err := s.engagementRepo.ListReviewLikes(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review likes: %w", err)
	}
	return likes, nil
}

// GetFavorites возвращает список избранного зрителя,
// создавая его при первом обращении
func (s *EngagementService) GetFavorites(ctx context.Context, viewer Viewer) (*entity.Favorite, error) {
	favorite, err := s.engagementRepo.GetOrCreateFavorite(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return favorite, nil
}

// AddFavoriteItem добавляет фильм в избранное.
// Повторное добавление того же фильма - ErrDuplicateFavoriteItem.
func (s *EngagementService) AddFavoriteItem(ctx context.Context, viewer Viewer, req *entity.CreateFavoriteItemRequest) (*entity.FavoriteItem, error) {
	if _, err := s.movieRepo.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to verify movie: %w", err)
	}

	favorite, err := s.engagementRepo.GetOrCreateFavorite(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	item := &entity.FavoriteItem{
		ID:         uuid.New(),
		FavoriteID: favorite.ID,
		MovieID:    req.MovieID,
		CreatedAt:  time.Now(),
	}

	if err := s.engagementRepo.CreateFavoriteItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.RecordEngagementWrite("favorite_item", "duplicate")
			return nil, ErrDuplicateFavoriteItem
		}
		return nil, fmt.Errorf("failed to add favorite item: %w", err)
	}

	metrics.RecordEngagementWrite("favorite_item", "created")
	return item, nil
}

// RemoveFavoriteItem удаляет фильм из избранного владельца
func (s *EngagementService) RemoveFavoriteItem(ctx context.Context, viewer Viewer, itemID uuid.UUID) error {
	favorite, err := s.engagementRepo.GetOrCreateFavorite(ctx, viewer.UserID)
	if err != nil {
		return fmt.Errorf("failed to get favorites: %w", err)
	}

	if err := s.engagementRepo.DeleteFavoriteItem(ctx, favorite.ID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove favorite item: %w", err)
	}
	return nil
}

// GetHistory возвращает журнал просмотров зрителя, новые записи первыми
func (s *EngagementService) GetHistory(ctx context.Context, viewer Viewer) ([]entity.HistoryEntry, error) {
	entries, err := s.historyRepo.ListByUser(ctx, viewer.UserID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return entries, nil
}

// AppendHistory добавляет явную запись о просмотре.
// Дедупликации нет: каждый просмотр - отдельная запись.
func (s *EngagementService) AppendHistory(ctx context.Context, viewer Viewer, req *entity.CreateHistoryRequest) (*entity.HistoryEntry, error) {
	if _, err := s.movieRepo.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to verify movie: %w", err)
	}

	entry := &entity.HistoryEntry{
		UserID:   viewer.UserID.String(),
		MovieID:  req.MovieID.String(),
		ViewedAt: time.Now(),
	}

	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	metrics.RecordEngagementWrite("history", "created")
	return entry, nil
}

// publish отправляет событие активности. Отказ Kafka не ломает запись:
// рейтинг трендов вспомогательный.
func (s *EngagementService) publish(ctx context.Context, event entity.EngagementEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal event")
		return
	}
	if err := s.producer.PublishMessage(ctx, event.MovieID, data); err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to publish event")
	}
}
