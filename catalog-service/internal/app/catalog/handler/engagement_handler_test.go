package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/catalog-service/internal/app/catalog/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func authorizedRequest(t *testing.T, method, path string, body *bytes.Buffer) *http.Request {
	t.Helper()
	if body == nil {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+makeToken(t, entity.StatusSimple))
	return req
}

// ==================== Rating Tests ====================

func TestEngagementHandler_CreateRating_Success(t *testing.T) {
	// Arrange
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	env.movieRepo.On("GetByID", mock.Anything, movie.ID).Return(movie, nil)
	env.engRepo.On("CreateRating", mock.Anything, mock.AnythingOfType("*entity.Rating")).Return(nil)
	env.producer.On("PublishMessage", mock.Anything, movie.ID.String(), mock.AnythingOfType("[]uint8")).Return(nil)

	req := authorizedRequest(t, http.MethodPost, "/ratings",
		jsonBody(t, entity.CreateRatingRequest{MovieID: movie.ID, Stars: 9}))
	w := httptest.NewRecorder()

	// Act
	env.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "moviefan")
}

func TestEngagementHandler_CreateRating_Unauthorized(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/ratings",
		jsonBody(t, entity.CreateRatingRequest{MovieID: uuid.New(), Stars: 5}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEngagementHandler_CreateRating_Duplicate_Conflict(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	env.movieRepo.On("GetByID", mock.Anything, movie.ID).Return(movie, nil)
	env.engRepo.On("CreateRating", mock.Anything, mock.AnythingOfType("*entity.Rating")).
		Return(repository.ErrDuplicateKey)

	req := authorizedRequest(t, http.MethodPost, "/ratings",
		jsonBody(t, entity.CreateRatingRequest{MovieID: movie.ID, Stars: 7}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already rated")
}

func TestEngagementHandler_CreateRating_StarsOutOfRange(t *testing.T) {
	// Валидация binding отклоняет stars вне 1..10 до вызова сервиса
	env := newTestEnv()

	req := authorizedRequest(t, http.MethodPost, "/ratings",
		jsonBody(t, map[string]interface{}{"movie_id": uuid.New(), "stars": 11}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.engRepo.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything)
}

func TestEngagementHandler_CreateRating_MovieNotFound(t *testing.T) {
	env := newTestEnv()

	id := uuid.New()
	env.movieRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrMovieNotFound)

	req := authorizedRequest(t, http.MethodPost, "/ratings",
		jsonBody(t, entity.CreateRatingRequest{MovieID: id, Stars: 3}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==================== Review Tests ====================

func TestEngagementHandler_CreateReview_Success(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	env.movieRepo.On("GetByID", mock.Anything, movie.ID).Return(movie, nil)
	env.engRepo.On("CreateReview", mock.Anything, mock.AnythingOfType("*entity.Review")).Return(nil)
	env.producer.On("PublishMessage", mock.Anything, movie.ID.String(), mock.AnythingOfType("[]uint8")).Return(nil)

	req := authorizedRequest(t, http.MethodPost, "/reviews",
		jsonBody(t, entity.CreateReviewRequest{MovieID: movie.ID, Text: "Пересматривал дважды"}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEngagementHandler_CreateReview_ParentFromOtherMovie(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	parentID := uuid.New()
	parent := &entity.Review{ID: parentID, MovieID: uuid.New()}

	env.movieRepo.On("GetByID", mock.Anything, movie.ID).Return(movie, nil)
	env.engRepo.On("GetReview", mock.Anything, parentID).Return(parent, nil)

	req := authorizedRequest(t, http.MethodPost, "/reviews",
		jsonBody(t, entity.CreateReviewRequest{MovieID: movie.ID, Text: "Ответ", ParentID: &parentID}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEngagementHandler_CreateReview_EmptyText(t *testing.T) {
	env := newTestEnv()

	req := authorizedRequest(t, http.MethodPost, "/reviews",
		jsonBody(t, map[string]interface{}{"movie_id": uuid.New(), "text": ""}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== Review Like Tests ====================

func TestEngagementHandler_CreateReviewLike_Duplicate_Conflict(t *testing.T) {
	env := newTestEnv()

	reviewID := uuid.New()
	env.engRepo.On("GetReview", mock.Anything, reviewID).
		Return(&entity.Review{ID: reviewID, MovieID: uuid.New()}, nil)
	env.engRepo.On("CreateReviewLike", mock.Anything, mock.AnythingOfType("*entity.ReviewLike")).
		Return(repository.ErrDuplicateKey)

	req := authorizedRequest(t, http.MethodPost, "/review_like",
		jsonBody(t, entity.CreateReviewLikeRequest{ReviewID: reviewID}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEngagementHandler_DeleteReviewLike_NotFound(t *testing.T) {
	env := newTestEnv()

	likeID := uuid.New()
	env.engRepo.On("DeleteReviewLike", mock.Anything, mock.AnythingOfType("uuid.UUID"), likeID).
		Return(repository.ErrNotFound)

	req := authorizedRequest(t, http.MethodDelete, "/review_like/"+likeID.String(), nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==================== Favorites Tests ====================

func TestEngagementHandler_AddFavoriteItem_Duplicate_Conflict(t *testing.T) {
	env := newTestEnv()

	movie := newDetailMovie(entity.StatusSimple)
	favorite := &entity.Favorite{ID: uuid.New()}
	env.movieRepo.On("GetByID", mock.Anything, movie.ID).Return(movie, nil)
	env.engRepo.On("GetOrCreateFavorite", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(favorite, nil)
	env.engRepo.On("CreateFavoriteItem", mock.Anything, mock.AnythingOfType("*entity.FavoriteItem")).
		Return(repository.ErrDuplicateKey)

	req := authorizedRequest(t, http.MethodPost, "/favorite-items",
		jsonBody(t, entity.CreateFavoriteItemRequest{MovieID: movie.ID}))
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already in favorites")
}

func TestEngagementHandler_GetFavorites_Success(t *testing.T) {
	env := newTestEnv()

	favorite := &entity.Favorite{ID: uuid.New(), Items: []entity.FavoriteItem{}}
	env.engRepo.On("GetOrCreateFavorite", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(favorite, nil)

	req := authorizedRequest(t, http.MethodGet, "/favorites", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ==================== History Tests ====================

func TestEngagementHandler_GetHistory_Success(t *testing.T) {
	env := newTestEnv()

	env.historyRepo.On("ListByUser", mock.Anything, mock.AnythingOfType("string")).
		Return([]entity.HistoryEntry{}, nil)

	req := authorizedRequest(t, http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "history")
}

func TestEngagementHandler_AppendHistory_Unauthorized(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/history",
		jsonBody(t, entity.CreateHistoryRequest{MovieID: uuid.New()}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
