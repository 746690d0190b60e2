package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config содержит все настройки приложения Trends Service
// Включает конфигурацию для HTTP сервера, Redis, Kafka, cron и опциональной
// очистки токенов в базе auth-service
type Config struct {
	Server       ServerConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Cron         CronConfig
	TokenCleanup TokenCleanupConfig
	LogLevel     string
}

// ServerConfig - настройки HTTP сервера (trending API + healthcheck)
type ServerConfig struct {
	Host string
	Port string
}

// RedisConfig - настройки Redis, хранящего рейтинг трендов
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки consumer группы событий активности
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// CronConfig - расписание обслуживающих задач
type CronConfig struct {
	Schedule string
}

// TokenCleanupConfig - очистка истекших токенов в PostgreSQL auth-service.
// Нужна только когда auth работает с TOKEN_STORE=postgres: Redis-хранилище
// чистит себя само через TTL.
type TokenCleanupConfig struct {
	Enabled bool
	DSN     string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	minBytes, err := strconv.Atoi(getEnv("KAFKA_MIN_BYTES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_MIN_BYTES value: %w", err)
	}

	maxBytes, err := strconv.Atoi(getEnv("KAFKA_MAX_BYTES", "1048576"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_MAX_BYTES value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:    getEnv("KAFKA_TOPIC", "engagement_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "trends-service"),
			MinBytes: minBytes,
			MaxBytes: maxBytes,
		},
		Cron: CronConfig{
			Schedule: getEnv("TRENDS_CRON_SCHEDULE", "0 3 * * *"),
		},
		TokenCleanup: TokenCleanupConfig{
			Enabled: getEnvBool("TOKEN_CLEANUP_ENABLED", false),
			DSN:     getEnv("TOKEN_CLEANUP_DSN", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Address возвращает адрес HTTP сервера
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Address возвращает адрес Redis
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
