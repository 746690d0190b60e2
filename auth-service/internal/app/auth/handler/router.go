package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kinopark/pkg/logger"
	"kinopark/pkg/metrics"
)

// SetupRoutes настраивает все маршруты auth-service
func SetupRoutes(authHandler *AuthHandler, userHandler *UserHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("auth-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "auth-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичные эндпоинты (без аутентификации)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Защищенные эндпоинты (требуют аутентификации)
		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("/me", authHandler.GetMe)
			protected.POST("/logout", authHandler.Logout)
		}
	}

	// Профильные эндпоинты - только собственный профиль
	user := router.Group("/user")
	user.Use(authMiddleware.Authenticate())
	{
		user.GET("", userHandler.List)
		user.GET("/:id", userHandler.Get)
		user.PUT("/:id", userHandler.Update)
		user.DELETE("/:id", userHandler.Delete)
	}

	return router
}
