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

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	referenceCacheTTL = time.Hour
)

// CatalogService обрабатывает чтение каталога: списки и карточки фильмов,
// справочники, агрегаты оценок. Координирует репозитории, Redis кеш,
// журнал просмотров и Kafka producer.
type CatalogService struct {
	movieRepo    repository.MovieRepository
	refRepo      repository.ReferenceRepository
	historyRepo  repository.HistoryRepository
	cache        util.ReferenceCache
	producer     util.MessagePublisher
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(
	movieRepo repository.MovieRepository,
	refRepo repository.ReferenceRepository,
	historyRepo repository.HistoryRepository,
	cache util.ReferenceCache,
	producer util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		movieRepo:   movieRepo,
		refRepo:     refRepo,
		historyRepo: historyRepo,
		cache:       cache,
		producer:    producer,
	}
}

// === MOVIES ===

// ListMovies возвращает страницу списка фильмов.
// Список публичный и никогда не гейтится: состав полей не раскрывает
// платный контент.
func (s *CatalogService) ListMovies(ctx context.Context, filter entity.MovieFilter) (*entity.MovieListResponse, error) {
	normalizePagination(&filter)

	movies, total, err := s.movieRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	items := make([]entity.MovieListItem, 0, len(movies))
	for _, m := range movies {
		item := entity.MovieListItem{
			ID:        m.ID,
			PosterURL: m.PosterURL,
			Name:      m.Name,
			Year:      m.Year,
			Countries: make([]string, 0, len(m.Countries)),
			Genres:    make([]string, 0, len(m.Genres)),
		}
		for _, c := range m.Countries {
			item.Countries = append(item.Countries, c.Name)
		}
		for _, g := range m.Genres {
			item.Genres = append(item.Genres, g.Name)
		}
		items = append(items, item)
	}

	return &entity.MovieListResponse{
		Movies:   items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetMovieDetail возвращает полную карточку фильма.
// pro-фильм доступен только pro-зрителю, иначе ErrAccessDenied.
// Успешный просмотр аутентифицированного зрителя пишется в журнал
// и публикуется событием MOVIE_VIEWED.
func (s *CatalogService) GetMovieDetail(ctx context.Context, id uuid.UUID, viewer *Viewer) (*entity.MovieDetail, error) {
	movie, err := s.movieRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	if !viewer.CanWatch(movie.Status) {
		metrics.CatalogDetailDenied.Inc()
		return nil, ErrAccessDenied
	}

	avg, count, err := s.movieRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}

	detail := buildMovieDetail(movie, avg, count)

	if viewer != nil {
		s.recordView(ctx, viewer, movie.ID)
	}
	metrics.CatalogMovieViews.WithLabelValues(movie.Status).Inc()

	return detail, nil
}

// recordView пишет просмотр в журнал и публикует событие.
// Обе операции вспомогательные: их отказ не ломает выдачу карточки.
func (s *CatalogService) recordView(ctx context.Context, viewer *Viewer, movieID uuid.UUID) {
	entry := &entity.HistoryEntry{
		UserID:   viewer.UserID.String(),
		MovieID:  movieID.String(),
		ViewedAt: time.Now(),
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		logger.Error().Err(err).Str("movie_id", movieID.String()).Msg("Failed to append history entry")
	}

	event := entity.EngagementEvent{
		EventType: entity.EventMovieViewed,
		MovieID:   movieID.String(),
		UserID:    viewer.UserID.String(),
		Timestamp: time.Now(),
	}
	if err := s.publishEvent(ctx, event); err != nil {
		logger.Error().Err(err).Str("movie_id", movieID.String()).Msg("Failed to publish MOVIE_VIEWED event")
	}
}

// === REFERENCE DATA ===

// ListCategories возвращает страницу категорий. Первая страница
// кешируется в Redis: именно ее запрашивают постоянно.
func (s *CatalogService) ListCategories(ctx context.Context, page, pageSize int) (*entity.CategoryListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	if page == 1 {
		cached, err := s.cache.GetCategories(ctx)
		if err == nil && len(cached) > 0 {
			total := int64(len(cached))
			// Кеш хранит полную первую страницу, клиент мог попросить меньше
			if len(cached) > pageSize {
				cached = cached[:pageSize]
			}
			return &entity.CategoryListResponse{
				Categories: cached,
				Total:      total,
				Page:       page,
				PageSize:   pageSize,
			}, nil
		}
	}

	categories, total, err := s.refRepo.ListCategories(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if page == 1 && total <= int64(pageSize) {
		if err := s.cache.SetCategories(ctx, categories, referenceCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache categories")
		}
	}

	return &entity.CategoryListResponse{
		Categories: categories,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.refRepo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) ListGenres(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) (*entity.GenreListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	genres, total, err := s.refRepo.ListGenres(ctx, categoryID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	return &entity.GenreListResponse{
		Genres:   genres,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *CatalogService) GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	genre, err := s.refRepo.GetGenre(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return genre, nil
}

// ListCountries возвращает все страны с кешированием в Redis
func (s *CatalogService) ListCountries(ctx context.Context) ([]entity.Country, error) {
	cached, err := s.cache.GetCountries(ctx)
	if err == nil && len(cached) > 0 {
		return cached, nil
	}

	countries, err := s.refRepo.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	if err := s.cache.SetCountries(ctx, countries, referenceCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache countries")
	}

	return countries, nil
}

func (s *CatalogService) GetCountry(ctx context.Context, id uuid.UUID) (*entity.Country, error) {
	country, err := s.refRepo.GetCountry(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return country, nil
}

func (s *CatalogService) ListDirectors(ctx context.Context) ([]entity.Director, error) {
	directors, err := s.refRepo.ListDirectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	return directors, nil
}

func (s *CatalogService) GetDirector(ctx context.Context, id uuid.UUID) (*entity.Director, error) {
	director, err := s.refRepo.GetDirector(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDirectorNotFound) {
			return nil, ErrDirectorNotFound
		}
		return nil, fmt.Errorf("failed to get director: %w", err)
	}
	return director, nil
}

func (s *CatalogService) ListActors(ctx context.Context) ([]entity.Actor, error) {
	actors, err := s.refRepo.ListActors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	return actors, nil
}

func (s *CatalogService) GetActor(ctx context.Context, id uuid.UUID) (*entity.Actor, error) {
	actor, err := s.refRepo.GetActor(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	return actor, nil
}

// === HELPERS ===

func (s *CatalogService) publishEvent(ctx context.Context, event entity.EngagementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return s.producer.PublishMessage(ctx, event.MovieID, data)
}

// buildMovieDetail собирает карточку из модели и агрегатов
func buildMovieDetail(movie *entity.Movie, avg float64, count int64) *entity.MovieDetail {
	ratings := make([]entity.RatingView, 0, len(movie.Ratings))
	for _, r := range movie.Ratings {
		ratings = append(ratings, entity.RatingView{
			Username:  r.Username,
			Stars:     r.Stars,
			CreatedAt: r.CreatedAt,
		})
	}

	reviews := make([]entity.ReviewView, 0, len(movie.Reviews))
	for _, r := range movie.Reviews {
		reviews = append(reviews, entity.ReviewView{
			ID:        r.ID,
			Username:  r.Username,
			Text:      r.Text,
			ParentID:  r.ParentID,
			CreatedAt: r.CreatedAt,
		})
	}

	return &entity.MovieDetail{
		ID:          movie.ID,
		Name:        movie.Name,
		Year:        movie.Year,
		Quality:     movie.Quality,
		RuntimeMin:  movie.RuntimeMin,
		PosterURL:   movie.PosterURL,
		TrailerURL:  movie.TrailerURL,
		Description: movie.Description,
		Status:      movie.Status,
		Countries:   movie.Countries,
		Genres:      movie.Genres,
		Directors:   movie.Directors,
		Actors:      movie.Actors,
		Videos:      movie.Videos,
		Frames:      movie.Frames,
		Ratings:     ratings,
		Reviews:     reviews,
		AvgRating:   avg,
		RatingCount: count,
	}
}

func normalizePagination(filter *entity.MovieFilter) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
