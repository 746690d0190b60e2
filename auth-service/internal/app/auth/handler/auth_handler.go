package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kinopark/auth-service/internal/app/auth/entity"
	"kinopark/auth-service/internal/app/auth/service"
	"kinopark/pkg/metrics"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
	userService service.UserServiceInterface
}

func NewAuthHandler(authService service.AuthServiceInterface, userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "User with this username or email already exists",
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to register user",
			})
		}
		return
	}

	metrics.AuthRegistrations.Inc()
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			// Одинаковый ответ для неизвестного имени и неверного пароля
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid username or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to login",
			})
		}
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	metrics.AuthTokensIssued.WithLabelValues("access").Inc()
	metrics.AuthTokensIssued.WithLabelValues("refresh").Inc()

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req entity.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Refresh token has been revoked",
			})
		case errors.Is(err, service.ErrTokenExpired), errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired refresh token",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to refresh token",
			})
		}
		return
	}

	metrics.AuthTokensIssued.WithLabelValues("access").Inc()
	metrics.AuthTokensIssued.WithLabelValues("refresh").Inc()

	c.JSON(http.StatusOK, tokens)
}

// Logout отзывает refresh токен и блокирует предъявленный access токен.
// Успех - 205 Reset Content, любой невалидный refresh токен - 400 без деталей.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req entity.LogoutRequest
	// Тело может отсутствовать - тогда токен пустой и логаут вернет 400
	_ = c.ShouldBindJSON(&req)

	accessToken := bearerToken(c)
	if err := h.authService.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Invalid refresh token",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to logout",
		})
		return
	}

	metrics.AuthTokensRevoked.Inc()
	c.Status(http.StatusResetContent)
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get user info",
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// currentUserID достает ID пользователя, положенный middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}
