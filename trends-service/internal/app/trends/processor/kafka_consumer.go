package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"kinopark/pkg/logger"
	"kinopark/pkg/metrics"
	"kinopark/trends-service/internal/app/trends/entity"
	"kinopark/trends-service/internal/app/trends/service"
)

const serviceName = "trends-service"

// KafkaConsumer читает события активности из топика engagement_events
type KafkaConsumer struct {
	reader    *kafka.Reader
	trendsSvc service.TrendsServiceInterface
	topic     string
	groupID   string
	stopChan  chan struct{}
	doneChan  chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	trendsSvc service.TrendsServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		trendsSvc: trendsSvc,
		topic:     topic,
		groupID:   groupID,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().
		Str("topic", c.topic).
		Str("group", c.groupID).
		Msg("Starting Kafka consumer")

	go c.consume(ctx)
}

// Stop останавливает consumer и дожидается завершения обработки
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if readCtx.Err() != nil {
					// Таймаут чтения при пустом топике, не ошибка
					continue
				}
				metrics.RecordKafkaError(serviceName, c.topic, "fetch")
				logger.Error().Err(err).Msg("Error fetching message")
				time.Sleep(time.Second)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				metrics.RecordKafkaError(serviceName, c.topic, "process")
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Msg("Error processing message")
				// Offset не коммитится, сообщение придет повторно
				continue
			}

			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID)
			if err := c.reader.CommitMessages(ctx, message); err != nil {
				metrics.RecordKafkaError(serviceName, c.topic, "commit")
				logger.Error().Err(err).Msg("Error committing message")
			}
		}
	}
}

// processMessage обрабатывает одно событие активности
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.EngagementEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		// Битое сообщение нельзя обработать повторно, логируем и пропускаем
		logger.Warn().
			Err(err).
			Int64("offset", message.Offset).
			Msg("Skipping malformed message")
		return nil
	}

	logger.Debug().
		Str("event_type", event.EventType).
		Str("movie_id", event.MovieID).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received engagement event")

	if err := c.trendsSvc.ProcessEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process engagement event: %w", err)
	}

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
