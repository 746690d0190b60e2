package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"kinopark/auth-service/internal/app/auth/config"
	"kinopark/auth-service/internal/app/auth/handler"
	"kinopark/auth-service/internal/app/auth/repository"
	"kinopark/auth-service/internal/app/auth/service"
	"kinopark/auth-service/internal/app/auth/util"
	"kinopark/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("auth-service", cfg.LogLevel)

	// Подключаемся к базе данных PostgreSQL
	db, err := connectDB(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	logger.Info().Msg("Successfully connected to PostgreSQL")

	// Инициализируем JWT менеджер
	jwtManager := util.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessTokenDuration,
		cfg.JWT.RefreshTokenDuration,
	)

	userRepo := repository.NewUserRepository(db)

	// Хранилище токенов: Redis по умолчанию, PostgreSQL по TOKEN_STORE=postgres.
	// Redis обязателен для мультиинстансного деплоя - отзыв токена
	// должен быть виден всем инстансам.
	var tokenRepo repository.TokenRepository
	if cfg.TokenStore == "redis" {
		redisClient := connectRedis(cfg.Redis)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		logger.Info().Msg("Successfully connected to Redis")

		tokenRepo = repository.NewRedisTokenRepository(redisClient)
	} else {
		tokenRepo = repository.NewTokenRepository(db)
		logger.Info().Msg("Using PostgreSQL token store")
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager)
	userService := service.NewUserService(userRepo, tokenRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := handler.NewAuthMiddleware(authService)

	router := handler.SetupRoutes(authHandler, userHandler, authMiddleware)

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

// connectDB устанавливает соединение с PostgreSQL используя pgx connection pool
func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// Пробуем подключиться с повторными попытками
	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
	}

	return pool, nil
}

// connectRedis создает и настраивает Redis клиент
func connectRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
}
