package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kinopark/catalog-service/internal/app/catalog/config"
	"kinopark/catalog-service/internal/app/catalog/handler"
	"kinopark/catalog-service/internal/app/catalog/repository"
	"kinopark/catalog-service/internal/app/catalog/service"
	"kinopark/catalog-service/internal/app/catalog/util"
	"kinopark/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("catalog-service", cfg.LogLevel)

	// Подключаемся к PostgreSQL через GORM
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL")

	// Подключаемся к MongoDB для журнала просмотров
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()
	logger.Info().Msg("Successfully connected to MongoDB")

	// Подключаемся к Redis для кеша справочников
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// Продюсер событий активности
	producer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()
	logger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.Topic).
		Msg("Kafka producer initialized")

	// Инициализируем репозитории
	movieRepo := repository.NewMovieRepository(db)
	refRepo := repository.NewReferenceRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	historyRepo := repository.NewHistoryRepository(mongoClient.Database(cfg.MongoDB.Database))

	// Инициализируем сервисы
	catalogService := service.NewCatalogService(movieRepo, refRepo, historyRepo, redisClient, producer)
	engagementService := service.NewEngagementService(
		movieRepo,
		engagementRepo,
		historyRepo,
		producer,
		cfg.Engagement.DedupReviews,
	)

	// Инициализируем обработчики
	movieHandler := handler.NewMovieHandler(catalogService)
	referenceHandler := handler.NewReferenceHandler(catalogService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	authMiddleware := handler.NewAuthMiddleware(util.NewJWTValidator(cfg.JWT.Secret))

	router := handler.SetupRoutes(movieHandler, referenceHandler, engagementHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Ожидаем сигнала завершения (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL используя GORM.
// TranslateError обязателен: нарушение уникального индекса должно
// приходить как gorm.ErrDuplicatedKey, на нем держатся ответы 409.
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	// Retry logic для устойчивости при запуске в Docker
	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				if pingErr := sqlDB.Ping(); pingErr != nil {
					err = pingErr
				} else {
					// Настраиваем connection pool
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, clientOptions)
		cancel()
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()
			if err == nil {
				return client, nil
			}
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to MongoDB, retrying")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
