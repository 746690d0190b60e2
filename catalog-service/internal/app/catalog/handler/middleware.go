package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kinopark/catalog-service/internal/app/catalog/service"
	"kinopark/catalog-service/internal/app/catalog/util"
)

const viewerContextKey = "viewer"

type AuthMiddleware struct {
	validator *util.JWTValidator
}

func NewAuthMiddleware(validator *util.JWTValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Authenticate проверяет bearer токен и кладет зрителя в контекст запроса.
// Запросы без валидного токена отклоняются.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseHeader(c)
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"message": "Token has expired",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"message": "Invalid token",
				})
			}
			c.Abort()
			return
		}

		c.Set(viewerContextKey, service.Viewer{
			UserID:   claims.UserID,
			Username: claims.Username,
			Status:   claims.Status,
		})

		c.Next()
	}
}

// OptionalAuthenticate кладет зрителя в контекст, если токен валиден.
// Отсутствующий или невалидный токен не ошибка: запрос идет
// дальше как анонимный и видит только simple-контент.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseHeader(c)
		if err == nil {
			c.Set(viewerContextKey, service.Viewer{
				UserID:   claims.UserID,
				Username: claims.Username,
				Status:   claims.Status,
			})
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseHeader(c *gin.Context) (*util.JWTClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, util.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, util.ErrInvalidToken
	}

	return m.validator.ValidateToken(parts[1])
}

// viewerFromContext достает зрителя, положенного Authenticate
func viewerFromContext(c *gin.Context) (service.Viewer, bool) {
	value, exists := c.Get(viewerContextKey)
	if !exists {
		return service.Viewer{}, false
	}
	viewer, ok := value.(service.Viewer)
	return viewer, ok
}

// optionalViewerFromContext возвращает nil для анонимного запроса
func optionalViewerFromContext(c *gin.Context) *service.Viewer {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return nil
	}
	return &viewer
}
