//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"kinopark/catalog-service/internal/app/catalog/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// CatalogBaseURL - адрес запущенного catalog-service
	// Для E2E тестов стек должен быть запущен через docker-compose
	CatalogBaseURL = "http://localhost:8081"

	// AuthBaseURL - адрес auth-service, выдающего токены
	AuthBaseURL = "http://localhost:8080"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// registerAndLogin заводит свежего пользователя и возвращает access токен
func registerAndLogin(t *testing.T, client *http.Client) string {
	t.Helper()

	username := fmt.Sprintf("catalog_e2e_%d", time.Now().UnixNano())
	payload := map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}
	body, _ := json.Marshal(payload)

	resp, err := client.Post(AuthBaseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "registration should succeed")

	var tokens tokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// TestFullCatalogFlow тестирует полный цикл зрителя:
// 1. Регистрация и вход через auth-service
// 2. Список фильмов
// 3. Детальная карточка фильма (просмотр попадает в журнал)
// 4. Оценка фильма
// 5. Повторная оценка отклоняется с 409
// 6. Фильм в избранное
// 7. Журнал просмотров содержит фильм
func TestFullCatalogFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// ==================== Step 1: Register & Login ====================
	t.Log("Step 1: Registering user via auth-service")
	token := registerAndLogin(t, client)

	// ==================== Step 2: List Movies ====================
	t.Log("Step 2: Listing movies")

	resp := doRequest(t, client, http.MethodGet, CatalogBaseURL+"/movie", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list entity.MovieListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	if len(list.Movies) == 0 {
		t.Skip("no movies seeded in catalog, skipping engagement flow")
	}
	movieID := list.Movies[0].ID
	t.Logf("Using movie: %s (ID: %s)", list.Movies[0].Name, movieID)

	// ==================== Step 3: Movie Detail ====================
	t.Log("Step 3: Getting movie detail")

	resp = doRequest(t, client, http.MethodGet, CatalogBaseURL+"/movie/"+movieID.String(), token, nil)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		t.Skip("first movie is pro-only and test user is simple, skipping")
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail entity.MovieDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, movieID, detail.ID)

	// ==================== Step 4: Rate Movie ====================
	t.Log("Step 4: Rating movie")

	resp = doRequest(t, client, http.MethodPost, CatalogBaseURL+"/ratings", token,
		entity.CreateRatingRequest{MovieID: movieID, Stars: 8})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// ==================== Step 5: Duplicate Rating Rejected ====================
	t.Log("Step 5: Second rating must conflict")

	resp = doRequest(t, client, http.MethodPost, CatalogBaseURL+"/ratings", token,
		entity.CreateRatingRequest{MovieID: movieID, Stars: 2})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// ==================== Step 6: Add to Favorites ====================
	t.Log("Step 6: Adding movie to favorites")

	resp = doRequest(t, client, http.MethodPost, CatalogBaseURL+"/favorite-items", token,
		entity.CreateFavoriteItemRequest{MovieID: movieID})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// ==================== Step 7: History Contains View ====================
	t.Log("Step 7: Checking watch history")

	resp = doRequest(t, client, http.MethodGet, CatalogBaseURL+"/history", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history struct {
		History []entity.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	assert.NotEmpty(t, history.History, "movie detail view should be recorded")
}

// TestAnonymousAccess проверяет публичные эндпоинты без токена
func TestAnonymousAccess(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	for _, path := range []string{"/movie", "/category", "/country", "/health"} {
		resp, err := client.Get(CatalogBaseURL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s should be public", path)
	}

	// Запись активности без токена отклоняется
	resp := doRequest(t, client, http.MethodGet, CatalogBaseURL+"/favorites", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
