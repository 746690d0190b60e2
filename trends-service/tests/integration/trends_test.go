//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kinopark/trends-service/internal/app/trends/entity"
	"kinopark/trends-service/internal/app/trends/handler"
	"kinopark/trends-service/internal/app/trends/repository"
	"kinopark/trends-service/internal/app/trends/service"
)

// TrendsIntegrationTestSuite гоняет сервис трендов против реального Redis.
// Kafka не поднимается: события подаются напрямую в ProcessEvent, это
// ровно тот вызов, который делает consumer после десериализации.
type TrendsIntegrationTestSuite struct {
	suite.Suite
	redisClient *redis.Client
	repo        repository.TrendingRepository
	svc         *service.TrendsService
	router      *gin.Engine
}

func (s *TrendsIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     "localhost:6380",
		Password: "redis_password",
		DB:       14,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(s.T(), s.redisClient.Ping(ctx).Err(), "Redis должен быть запущен для интеграционных тестов")

	s.repo = repository.NewTrendingRepositoryWithClient(s.redisClient)
	s.svc = service.NewTrendsService(s.repo)
	s.router = handler.SetupRoutes(handler.NewTrendingHandler(s.svc))
}

func (s *TrendsIntegrationTestSuite) TearDownSuite() {
	if s.redisClient != nil {
		s.redisClient.FlushDB(context.Background())
		s.redisClient.Close()
	}
}

func (s *TrendsIntegrationTestSuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushDB(context.Background()).Err())
}

func (s *TrendsIntegrationTestSuite) emit(eventType, movieID string) {
	err := s.svc.ProcessEvent(context.Background(), &entity.EngagementEvent{
		EventType: eventType,
		MovieID:   movieID,
		UserID:    uuid.New().String(),
		Timestamp: time.Now(),
	})
	require.NoError(s.T(), err)
}

func (s *TrendsIntegrationTestSuite) getTrending(path string) (*httptest.ResponseRecorder, entity.TrendingResponse) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.router.ServeHTTP(w, req)

	var response entity.TrendingResponse
	if w.Code == http.StatusOK {
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

func (s *TrendsIntegrationTestSuite) TestEventWeightsAccumulate() {
	movieID := uuid.New().String()

	s.emit(entity.EventMovieViewed, movieID)
	s.emit(entity.EventRatingCreated, movieID)
	s.emit(entity.EventReviewCreated, movieID)

	w, response := s.getTrending("/trending")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().Len(response.Movies, 1)
	s.Equal(movieID, response.Movies[0].MovieID)
	s.Equal(float64(9), response.Movies[0].Score)
}

func (s *TrendsIntegrationTestSuite) TestRankingOrder() {
	hot := uuid.New().String()
	warm := uuid.New().String()
	cold := uuid.New().String()

	s.emit(entity.EventReviewCreated, hot)
	s.emit(entity.EventReviewCreated, hot)
	s.emit(entity.EventRatingCreated, warm)
	s.emit(entity.EventMovieViewed, cold)

	w, response := s.getTrending("/trending")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().Len(response.Movies, 3)
	s.Equal(hot, response.Movies[0].MovieID)
	s.Equal(warm, response.Movies[1].MovieID)
	s.Equal(cold, response.Movies[2].MovieID)
}

func (s *TrendsIntegrationTestSuite) TestLimitParameter() {
	for i := 0; i < 5; i++ {
		s.emit(entity.EventMovieViewed, uuid.New().String())
	}

	w, response := s.getTrending("/trending?limit=2")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(response.Movies, 2)
	s.Equal(2, response.Limit)
}

func (s *TrendsIntegrationTestSuite) TestUnknownEventIgnored() {
	err := s.svc.ProcessEvent(context.Background(), &entity.EngagementEvent{
		EventType: "SOMETHING_ELSE",
		MovieID:   uuid.New().String(),
		Timestamp: time.Now(),
	})
	s.Require().NoError(err)

	w, response := s.getTrending("/trending")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(response.Movies)
}

func (s *TrendsIntegrationTestSuite) TestPruneRanking() {
	// PruneRanking работает с фиксированным размером 1000, поэтому
	// обрезку хвоста проверяем напрямую через репозиторий
	for i := 0; i < 10; i++ {
		s.emit(entity.EventReviewCreated, uuid.New().String())
	}

	removed, err := s.repo.TrimToTop(context.Background(), 3)
	s.Require().NoError(err)
	s.Equal(int64(7), removed)

	w, response := s.getTrending("/trending")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(response.Movies, 3)
}

func (s *TrendsIntegrationTestSuite) TestHealthCheck() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "healthy")
}

func TestTrendsIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TrendsIntegrationTestSuite))
}
