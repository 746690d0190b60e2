package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Бизнес-метрики кинотеатра
// =============================================================================

// --- Auth Service ---

// AuthRegistrations - регистрации пользователей
var AuthRegistrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of user registrations",
	},
)

// AuthLogins - попытки входа
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"}, // success, failed
)

// AuthTokensIssued - выданные токены
var AuthTokensIssued = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Total number of tokens issued",
	},
	[]string{"type"}, // access, refresh
)

// AuthTokensRevoked - отозванные refresh токены
var AuthTokensRevoked = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_tokens_revoked_total",
		Help: "Total number of refresh tokens revoked",
	},
)

// --- Catalog Service ---

// CatalogDetailDenied - отказы в доступе к премиум-контенту
var CatalogDetailDenied = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "catalog_detail_access_denied_total",
		Help: "Total number of premium movie detail views denied",
	},
)

// CatalogMovieViews - просмотры страниц фильмов
var CatalogMovieViews = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_movie_views_total",
		Help: "Total number of movie detail views",
	},
	[]string{"status"}, // simple, pro
)

// EngagementWrites - созданные записи вовлечённости
var EngagementWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "engagement_writes_total",
		Help: "Total number of engagement records created",
	},
	[]string{"kind", "outcome"}, // kind: rating, review, review_like, favorite_item, history; outcome: created, duplicate, invalid
)

// --- Trends Service ---

// TrendsEventsProcessed - обработанные события вовлечённости
var TrendsEventsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "trends_events_processed_total",
		Help: "Total number of engagement events processed",
	},
	[]string{"event_type"},
)
