package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinopark/pkg/logger"
	"kinopark/trends-service/internal/app/trends/config"
	"kinopark/trends-service/internal/app/trends/handler"
	"kinopark/trends-service/internal/app/trends/processor"
	"kinopark/trends-service/internal/app/trends/repository"
	"kinopark/trends-service/internal/app/trends/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("trends-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("trends-service", cfg.LogLevel)
	logger.Info().Msg("Starting Trends Service...")

	trendingRepo, err := repository.NewTrendingRepository(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer trendingRepo.Close()
	logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tokenCleanupRepo repository.TokenCleanupRepository
	if cfg.TokenCleanup.Enabled {
		if cfg.TokenCleanup.DSN == "" {
			logger.Fatal().Msg("TOKEN_CLEANUP_ENABLED is set but TOKEN_CLEANUP_DSN is empty")
		}
		tokenCleanupRepo, err = repository.NewTokenCleanupRepository(ctx, cfg.TokenCleanup.DSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to token database")
		}
		logger.Info().Msg("Token cleanup enabled")
	}

	trendsSvc := service.NewTrendsService(trendingRepo)

	consumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		trendsSvc,
	)
	consumer.Start(ctx)

	scheduler := processor.NewCronScheduler(cfg.Cron.Schedule, trendsSvc, tokenCleanupRepo)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}

	trendingHandler := handler.NewTrendingHandler(trendsSvc)
	router := handler.SetupRoutes(trendingHandler)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Trends Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	consumer.Stop()
	scheduler.Stop()
	cancel()

	logger.Info().Msg("Trends Service stopped")
}
