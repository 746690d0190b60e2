package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kinopark/pkg/logger"
	"kinopark/trends-service/internal/app/trends/service"
)

// TrendingHandler отдает текущий рейтинг трендов
type TrendingHandler struct {
	trendsSvc service.TrendsServiceInterface
}

func NewTrendingHandler(trendsSvc service.TrendsServiceInterface) *TrendingHandler {
	return &TrendingHandler{trendsSvc: trendsSvc}
}

// GetTrending возвращает топ фильмов по активности
// GET /trending?limit=N
func (h *TrendingHandler) GetTrending(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	result, err := h.trendsSvc.GetTrending(c.Request.Context(), limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to get trending movies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trending movies"})
		return
	}

	c.JSON(http.StatusOK, result)
}
