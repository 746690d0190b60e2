package processor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"kinopark/pkg/logger"
	"kinopark/trends-service/internal/app/trends/repository"
	"kinopark/trends-service/internal/app/trends/service"
)

// CronScheduler запускает периодические задачи обслуживания:
// усечение рейтинга трендов и очистку протухших токенов
type CronScheduler struct {
	cron         *cron.Cron
	trendsSvc    service.TrendsServiceInterface
	tokenCleanup repository.TokenCleanupRepository
	schedule     string
}

// NewCronScheduler создает планировщик. tokenCleanup может быть nil,
// тогда очистка токенов не выполняется
func NewCronScheduler(
	schedule string,
	trendsSvc service.TrendsServiceInterface,
	tokenCleanup repository.TokenCleanupRepository,
) *CronScheduler {
	return &CronScheduler{
		cron:         cron.New(),
		trendsSvc:    trendsSvc,
		tokenCleanup: tokenCleanup,
		schedule:     schedule,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *CronScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runMaintenance); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", s.schedule).Msg("Cron scheduler started")

	// Первый прогон сразу после старта, чтобы не ждать расписания
	go s.runMaintenance()

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	logger.Info().Msg("Running scheduled maintenance")

	if err := s.trendsSvc.PruneRanking(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to prune trending ranking")
	}

	if s.tokenCleanup != nil {
		if err := s.tokenCleanup.CleanupExpiredTokens(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to clean up expired tokens")
		}
	}

	logger.Info().
		Dur("duration", time.Since(started)).
		Msg("Scheduled maintenance finished")
}
