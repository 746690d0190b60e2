package metrics

import (
	"time"
)

type DbOperation string

const (
	DbOpSelect DbOperation = "select"
	DbOpInsert DbOperation = "insert"
	DbOpUpdate DbOperation = "update"
	DbOpDelete DbOperation = "delete"
)

// DbTimer измеряет длительность одного запроса к БД
type DbTimer struct {
	service   string
	operation DbOperation
	table     string
	start     time.Time
}

func NewDbTimer(service string, op DbOperation, table string) *DbTimer {
	return &DbTimer{
		service:   service,
		operation: op,
		table:     table,
		start:     time.Now(),
	}
}

func (dt *DbTimer) ObserveDuration() {
	DbQueryDuration.WithLabelValues(dt.service, string(dt.operation), dt.table).Observe(time.Since(dt.start).Seconds())
}

func RecordDbError(service string, op DbOperation) {
	DbErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service, operation string) {
	RedisErrors.WithLabelValues(service, operation).Inc()
}

func RecordKafkaMessageProduced(service, topic string) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
}

func RecordKafkaMessageConsumed(service, topic, group string) {
	KafkaMessagesConsumed.WithLabelValues(service, topic, group).Inc()
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

// RecordEngagementWrite фиксирует исход записи вовлечённости
// kind: rating, review, review_like, favorite_item, history
// outcome: created, duplicate, invalid
func RecordEngagementWrite(kind, outcome string) {
	EngagementWrites.WithLabelValues(kind, outcome).Inc()
}
