package service

import (
	"context"
	"errors"
	"fmt"

	"kinopark/pkg/logger"
	"kinopark/pkg/metrics"
	"kinopark/trends-service/internal/app/trends/entity"
	"kinopark/trends-service/internal/app/trends/repository"
)

var (
	ErrInvalidEvent = errors.New("invalid engagement event")
)

// Веса событий: отзыв стоит дороже оценки, оценка дороже просмотра.
// Рейтинг совещательный, точная калибровка весов не принципиальна.
const (
	weightMovieViewed   = 1
	weightRatingCreated = 3
	weightReviewCreated = 5
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 100

	// rankingKeep - размер рейтинга после обрезки cron-задачей
	rankingKeep = 1000
)

type TrendsServiceInterface interface {
	ProcessEvent(ctx context.Context, event *entity.EngagementEvent) error
	GetTrending(ctx context.Context, limit int) (*entity.TrendingResponse, error)
	PruneRanking(ctx context.Context) error
}

// TrendsService накапливает события активности в рейтинг популярности
type TrendsService struct {
	trendingRepo repository.TrendingRepository
}

// NewTrendsService создает новый сервис трендов
func NewTrendsService(trendingRepo repository.TrendingRepository) *TrendsService {
	return &TrendsService{
		trendingRepo: trendingRepo,
	}
}

// ProcessEvent добавляет вес события фильму в рейтинге.
// Событие неизвестного типа пропускается без ошибки: его offset
// должен закоммититься, иначе consumer зациклится на нем.
func (s *TrendsService) ProcessEvent(ctx context.Context, event *entity.EngagementEvent) error {
	if event.MovieID == "" {
		return fmt.Errorf("%w: missing movie_id", ErrInvalidEvent)
	}

	var weight float64
	switch event.EventType {
	case entity.EventMovieViewed:
		weight = weightMovieViewed
	case entity.EventRatingCreated:
		weight = weightRatingCreated
	case entity.EventReviewCreated:
		weight = weightReviewCreated
	default:
		logger.Warn().
			Str("event_type", event.EventType).
			Str("movie_id", event.MovieID).
			Msg("Skipping unknown event type")
		return nil
	}

	if err := s.trendingRepo.IncrementScore(ctx, event.MovieID, weight); err != nil {
		return fmt.Errorf("failed to apply event weight: %w", err)
	}

	metrics.TrendsEventsProcessed.WithLabelValues(event.EventType).Inc()
	return nil
}

// GetTrending возвращает limit самых популярных фильмов
func (s *TrendsService) GetTrending(ctx context.Context, limit int) (*entity.TrendingResponse, error) {
	if limit < 1 {
		limit = defaultTrendingLimit
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}

	movies, err := s.trendingRepo.TopMovies(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending movies: %w", err)
	}

	return &entity.TrendingResponse{
		Movies: movies,
		Limit:  limit,
	}, nil
}

// PruneRanking обрезает рейтинг до rankingKeep лучших записей
func (s *TrendsService) PruneRanking(ctx context.Context) error {
	removed, err := s.trendingRepo.TrimToTop(ctx, rankingKeep)
	if err != nil {
		return fmt.Errorf("failed to prune ranking: %w", err)
	}

	logger.Info().Int64("removed", removed).Msg("Trending ranking pruned")
	return nil
}
