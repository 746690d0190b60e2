package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/catalog-service/internal/app/catalog/service"
)

// EngagementHandler обслуживает записи активности зрителя.
// Все маршруты закрыты Authenticate: зритель берется из токена,
// user_id в теле запроса не принимается.
type EngagementHandler struct {
	engagementService service.EngagementServiceInterface
}

func NewEngagementHandler(engagementService service.EngagementServiceInterface) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

func (h *EngagementHandler) CreateRating(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	var req entity.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	rating, err := h.engagementService.CreateRating(c.Request.Context(), viewer, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Movie not found",
			})
		case errors.Is(err, service.ErrDuplicateRating):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "Movie already rated",
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create rating",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, rating)
}

func (h *EngagementHandler) CreateReview(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	review, err := h.engagementService.CreateReview(c.Request.Context(), viewer, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Movie not found",
			})
		case errors.Is(err, service.ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "Movie already reviewed",
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create review",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *EngagementHandler) CreateReviewLike(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	var req entity.CreateReviewLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	like, err := h.engagementService.CreateReviewLike(c.Request.Context(), viewer, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Review not found",
			})
		case errors.Is(err, service.ErrDuplicateLike):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "Review already liked",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create like",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, like)
}

func (h *EngagementHandler) DeleteReviewLike(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.engagementService.DeleteReviewLike(c.Request.Context(), viewer, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Like not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to delete like",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like deleted"})
}

func (h *EngagementHandler) ListReviewLikes(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	likes, err := h.engagementService.ListReviewLikes(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list likes",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *EngagementHandler) GetFavorites(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	favorite, err := h.engagementService.GetFavorites(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get favorites",
		})
		return
	}

	c.JSON(http.StatusOK, favorite)
}

func (h *EngagementHandler) AddFavoriteItem(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	var req entity.CreateFavoriteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	item, err := h.engagementService.AddFavoriteItem(c.Request.Context(), viewer, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Movie not found",
			})
		case errors.Is(err, service.ErrDuplicateFavoriteItem):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "Movie already in favorites",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to add favorite",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *EngagementHandler) RemoveFavoriteItem(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.engagementService.RemoveFavoriteItem(c.Request.Context(), viewer, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Favorite item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite item removed"})
}

func (h *EngagementHandler) GetHistory(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	entries, err := h.engagementService.GetHistory(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *EngagementHandler) AppendHistory(c *gin.Context) {
	viewer, ok := requireViewer(c)
	if !ok {
		return
	}

	var req entity.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	entry, err := h.engagementService.AppendHistory(c.Request.Context(), viewer, &req)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Movie not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to append history",
		})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// requireViewer достает зрителя после Authenticate, при сбое пишет 401
func requireViewer(c *gin.Context) (service.Viewer, bool) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return service.Viewer{}, false
	}
	return viewer, true
}
