package util

import (
	"context"
	"fmt"
	"time"

	"kinopark/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer обертка над Kafka writer для событий активности.
// События RATING_CREATED, REVIEW_CREATED, MOVIE_VIEWED уходят в топик
// engagement_events, на который подписан trends-service.
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров в формате ["host:port"]
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Небольшой таймаут батча: события активности должны попадать
		// в рейтинг трендов без заметной задержки
		BatchSize:    100,
		BatchTimeout: time.Second,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет сообщение в Kafka.
// key - MovieID, чтобы события одного фильма шли в одну партицию.
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.RecordKafkaError(serviceName, p.topic, "produce")
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced(serviceName, p.topic)
	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
