package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/catalog-service/internal/app/catalog/repository"
	"kinopark/catalog-service/internal/app/catalog/repository/mocks"
	"kinopark/catalog-service/internal/app/catalog/service"
	"kinopark/catalog-service/internal/app/catalog/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv собирает полный роутер catalog-service поверх моков репозиториев
type testEnv struct {
	router      *gin.Engine
	movieRepo   *mocks.MockMovieRepository
	refRepo     *mocks.MockReferenceRepository
	engRepo     *mocks.MockEngagementRepository
	historyRepo *mocks.MockHistoryRepository
	cache       *mocks.MockReferenceCache
	producer    *mocks.MockMessagePublisher
}

func newTestEnv() *testEnv {
	env := &testEnv{
		movieRepo:   new(mocks.MockMovieRepository),
		refRepo:     new(mocks.MockReferenceRepository),
		engRepo:     new(mocks.MockEngagementRepository),
		historyRepo: new(mocks.MockHistoryRepository),
		cache:       new(mocks.MockReferenceCache),
		producer:    new(mocks.MockMessagePublisher),
	}

	catalogService := service.NewCatalogService(env.movieRepo, env.refRepo, env.historyRepo, env.cache, env.producer)
	engagementService := service.NewEngagementService(env.movieRepo, env.engRepo, env.historyRepo, env.producer, false)

	movieHandler := NewMovieHandler(catalogService)
	referenceHandler := NewReferenceHandler(catalogService)
	engagementHandler := NewEngagementHandler(engagementService)
	authMiddleware := NewAuthMiddleware(util.NewJWTValidator(testSecret))

	env.router = SetupRoutes(movieHandler, referenceHandler, engagementHandler, authMiddleware)
	return env
}

// makeToken выпускает access токен с тем же секретом, что и роутер
func makeToken(t *testing.T, status string) string {
	t.Helper()
	return makeTokenFor(t, uuid.New(), status)
}

func makeTokenFor(t *testing.T, userID uuid.UUID, status string) string {
	t.Helper()

	now := time.Now()
	claims := util.JWTClaims{
		UserID:   userID,
		Username: "moviefan",
		Status:   status,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID.String(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newDetailMovie(status string) *entity.Movie {
	return &entity.Movie{
		ID:         uuid.New(),
		Name:       "Dune",
		Year:       2021,
		Quality:    entity.Quality1080Ultra,
		RuntimeMin: 155,
		Status:     status,
	}
}

// ==================== Movie List Tests ====================

func TestMovieHandler_List_Success(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.movieRepo.On("List", mock.Anything, mock.AnythingOfType("entity.MovieFilter")).
		Return([]entity.Movie{*newDetailMovie(entity.StatusSimple)}, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/movie?page=1", nil)
	w := httptest.NewRecorder()

	// Act
	env.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
}

func TestMovieHandler_List_UnknownStatusRejected(t *testing.T) {
	// Кастомная валидация subscription пропускает только pro и simple
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/movie?status=gold", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMovieHandler_List_InvalidCountryID(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/movie?country_id=not-a-uuid", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== Movie Detail Tests ====================

func TestMovieHandler_Get_SimpleMovie_NoToken(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	env.movieRepo.On("GetDetail", mock.Anything, movie.ID).Return(movie, nil)
	env.movieRepo.On("AverageRating", mock.Anything, movie.ID).Return(7.5, int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, "/movie/"+movie.ID.String(), nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "avg_rating")

	// Анонимный просмотр не пишется в журнал
	env.historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestMovieHandler_Get_ProMovie_NoToken_Forbidden(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusPro)
	env.movieRepo.On("GetDetail", mock.Anything, movie.ID).Return(movie, nil)

	req := httptest.NewRequest(http.MethodGet, "/movie/"+movie.ID.String(), nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMovieHandler_Get_ProMovie_SimpleToken_Forbidden(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusPro)
	env.movieRepo.On("GetDetail", mock.Anything, movie.ID).Return(movie, nil)

	req := httptest.NewRequest(http.MethodGet, "/movie/"+movie.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, entity.StatusSimple))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMovieHandler_Get_ProMovie_ProToken_Success(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusPro)
	env.movieRepo.On("GetDetail", mock.Anything, movie.ID).Return(movie, nil)
	env.movieRepo.On("AverageRating", mock.Anything, movie.ID).Return(8.9, int64(40), nil)
	env.historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*entity.HistoryEntry")).Return(nil)
	env.producer.On("PublishMessage", mock.Anything, movie.ID.String(), mock.AnythingOfType("[]uint8")).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/movie/"+movie.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, entity.StatusPro))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env.historyRepo.AssertExpectations(t)
}

func TestMovieHandler_Get_InvalidToken_TreatedAsAnonymous(t *testing.T) {
	// Мусорный токен на опциональной аутентификации не дает 401:
	// запрос идет как анонимный и видит simple-фильм
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	env.movieRepo.On("GetDetail", mock.Anything, movie.ID).Return(movie, nil)
	env.movieRepo.On("AverageRating", mock.Anything, movie.ID).Return(0.0, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/movie/"+movie.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMovieHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv()

	id := uuid.New()
	env.movieRepo.On("GetDetail", mock.Anything, id).Return(nil, repository.ErrMovieNotFound)

	req := httptest.NewRequest(http.MethodGet, "/movie/"+id.String(), nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMovieHandler_Get_InvalidID(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/movie/not-a-uuid", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== Reference Tests ====================

func TestReferenceHandler_ListCategories_Success(t *testing.T) {
	env := newTestEnv()

	categories := []entity.Category{{ID: uuid.New(), Name: "Фильмы"}}
	env.cache.On("GetCategories", mock.Anything).Return(nil, nil)
	env.refRepo.On("ListCategories", mock.Anything, 1, 20).Return(categories, int64(1), nil)
	env.cache.On("SetCategories", mock.Anything, categories, mock.AnythingOfType("time.Duration")).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/category", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReferenceHandler_GetGenre_NotFound(t *testing.T) {
	env := newTestEnv()

	id := uuid.New()
	env.refRepo.On("GetGenre", mock.Anything, id).Return(nil, repository.ErrGenreNotFound)

	req := httptest.NewRequest(http.MethodGet, "/genre/"+id.String(), nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==================== Health Check Tests ====================

func TestHealthCheck(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog-service")
}
