package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kinopark/auth-service/internal/app/auth/entity"
	"kinopark/auth-service/internal/app/auth/service"
)

// UserHandler обслуживает профильные эндпоинты /user.
// Список и деталь неявно отфильтрованы по владельцу токена:
// чужой id дает 404, как будто профиля не существует.
type UserHandler struct {
	userService service.UserServiceInterface
}

func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	profiles, err := h.userService.ListProfiles(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list profiles",
		})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid profile id",
		})
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID, targetID)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid profile id",
		})
		return
	}

	var req entity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, targetID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "Email is already in use",
			})
			return
		}
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid profile id",
		})
		return
	}

	if err := h.userService.DeleteProfile(c.Request.Context(), userID, targetID); err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Profile deleted",
	})
}

func (h *UserHandler) writeProfileError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "Profile not found",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"message": "Failed to process profile request",
	})
}
