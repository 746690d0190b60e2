package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kinopark/trends-service/internal/app/trends/entity"
	"kinopark/trends-service/internal/app/trends/repository/mocks"
	"kinopark/trends-service/internal/app/trends/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() (*gin.Engine, *mocks.MockTrendingRepository) {
	trendingRepo := new(mocks.MockTrendingRepository)
	trendsSvc := service.NewTrendsService(trendingRepo)
	router := SetupRoutes(NewTrendingHandler(trendsSvc))
	return router, trendingRepo
}

// ==================== GetTrending Tests ====================

func TestGetTrending_Handler_Success(t *testing.T) {
	// Arrange
	router, trendingRepo := newTestRouter()
	movies := []entity.TrendingMovie{
		{MovieID: uuid.New().String(), Score: 42},
		{MovieID: uuid.New().String(), Score: 17},
	}
	trendingRepo.On("TopMovies", mock.Anything, 10).Return(movies, nil)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trending", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.TrendingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 10, response.Limit)
	assert.Equal(t, movies, response.Movies)
}

func TestGetTrending_Handler_CustomLimit(t *testing.T) {
	// Arrange
	router, trendingRepo := newTestRouter()
	trendingRepo.On("TopMovies", mock.Anything, 3).Return([]entity.TrendingMovie{}, nil)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trending?limit=3", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	trendingRepo.AssertExpectations(t)
}

func TestGetTrending_Handler_InvalidLimit(t *testing.T) {
	// Arrange
	router, trendingRepo := newTestRouter()

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trending?limit=abc", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	trendingRepo.AssertNotCalled(t, "TopMovies", mock.Anything, mock.Anything)
}

func TestGetTrending_Handler_RepositoryError(t *testing.T) {
	// Arrange
	router, trendingRepo := newTestRouter()
	trendingRepo.On("TopMovies", mock.Anything, 10).
		Return(nil, errors.New("connection refused"))

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trending", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ==================== Health Tests ====================

func TestTrendsHealthCheck(t *testing.T) {
	// Arrange
	router, _ := newTestRouter()

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trends-service")
}
