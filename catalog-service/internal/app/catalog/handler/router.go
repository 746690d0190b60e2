package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kinopark/pkg/logger"
	"kinopark/pkg/metrics"
)

// SetupRoutes настраивает все маршруты catalog-service
func SetupRoutes(
	movieHandler *MovieHandler,
	referenceHandler *ReferenceHandler,
	engagementHandler *EngagementHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	registerValidations()

	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

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
			"service": "catalog-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Каталог. Список публичный, детальная карточка решает
	// доступ по токену, если он есть.
	movie := router.Group("/movie")
	{
		movie.GET("", movieHandler.List)
		movie.GET("/:id", authMiddleware.OptionalAuthenticate(), movieHandler.Get)
	}

	// Справочники (публичные)
	router.GET("/category", referenceHandler.ListCategories)
	router.GET("/category/:id", referenceHandler.GetCategory)
	router.GET("/genre", referenceHandler.ListGenres)
	router.GET("/genre/:id", referenceHandler.GetGenre)
	router.GET("/country", referenceHandler.ListCountries)
	router.GET("/country/:id", referenceHandler.GetCountry)
	router.GET("/director", referenceHandler.ListDirectors)
	router.GET("/director/:id", referenceHandler.GetDirector)
	router.GET("/actor", referenceHandler.ListActors)
	router.GET("/actor/:id", referenceHandler.GetActor)

	// Активность зрителя (требует аутентификации)
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.Authenticate())
	{
		authenticated.POST("/ratings", engagementHandler.CreateRating)
		authenticated.POST("/reviews", engagementHandler.CreateReview)

		authenticated.GET("/review_like", engagementHandler.ListReviewLikes)
		authenticated.POST("/review_like", engagementHandler.CreateReviewLike)
		authenticated.DELETE("/review_like/:id", engagementHandler.DeleteReviewLike)

		authenticated.GET("/favorites", engagementHandler.GetFavorites)
		authenticated.POST("/favorite-items", engagementHandler.AddFavoriteItem)
		authenticated.DELETE("/favorite-items/:id", engagementHandler.RemoveFavoriteItem)

		authenticated.GET("/history", engagementHandler.GetHistory)
		authenticated.POST("/history", engagementHandler.AppendHistory)
	}

	return router
}
