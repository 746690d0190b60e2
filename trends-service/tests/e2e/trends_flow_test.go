//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	trendsBaseURL  = "http://localhost:8082"
	catalogBaseURL = "http://localhost:8081"
)

type trendingMovie struct {
	MovieID string  `json:"movie_id"`
	Score   float64 `json:"score"`
}

type trendingResponse struct {
	Movies []trendingMovie `json:"movies"`
	Limit  int             `json:"limit"`
}

func getTrending(t *testing.T, limit int) trendingResponse {
	t.Helper()

	url := trendsBaseURL + "/trending"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result trendingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func scoreOf(ranking trendingResponse, movieID string) (float64, bool) {
	for _, m := range ranking.Movies {
		if m.MovieID == movieID {
			return m.Score, true
		}
	}
	return 0, false
}

// TestTrendingReflectsViews проверяет полный путь события:
// просмотр в catalog-service -> Kafka -> рейтинг трендов
func TestTrendingReflectsViews(t *testing.T) {
	// Шаг 1: находим любой фильм в каталоге
	resp, err := http.Get(catalogBaseURL + "/movie")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var movies []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&movies))
	if len(movies) == 0 {
		t.Skip("В каталоге нет фильмов, пропускаем e2e сценарий")
	}

	var movieID string
	for _, m := range movies {
		if m.Status == "simple" {
			movieID = m.ID
			break
		}
	}
	if movieID == "" {
		t.Skip("Нет общедоступных фильмов, пропускаем e2e сценарий")
	}

	before := getTrending(t, 100)
	scoreBefore, _ := scoreOf(before, movieID)

	// Шаг 2: анонимный просмотр карточки фильма
	detailResp, err := http.Get(catalogBaseURL + "/movie/" + movieID)
	require.NoError(t, err)
	detailResp.Body.Close()
	require.Equal(t, http.StatusOK, detailResp.StatusCode)

	// Шаг 3: ждем прохождения события через Kafka
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		after := getTrending(t, 100)
		if scoreAfter, ok := scoreOf(after, movieID); ok && scoreAfter > scoreBefore {
			assert.GreaterOrEqual(t, scoreAfter-scoreBefore, float64(1))
			return
		}
		time.Sleep(2 * time.Second)
	}

	t.Fatalf("Событие просмотра фильма %s не дошло до рейтинга трендов за 30 секунд", movieID)
}

func TestTrendingLimitRespected(t *testing.T) {
	result := getTrending(t, 1)
	assert.Equal(t, 1, result.Limit)
	assert.LessOrEqual(t, len(result.Movies), 1)
}

func TestTrendsHealthEndpoint(t *testing.T) {
	resp, err := http.Get(trendsBaseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
