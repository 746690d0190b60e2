package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config содержит все настройки приложения Catalog Service
// Включает конфигурацию для HTTP сервера, PostgreSQL, MongoDB, Redis, Kafka и JWT
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	Engagement EngagementConfig
	LogLevel   string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Хранит фильмы, справочники и пользовательскую активность
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoDBConfig - настройки подключения к MongoDB
// Используется для журнала просмотров (история append-only)
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки Redis для кеширования справочников
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для отправки событий активности
// События RATING_CREATED, REVIEW_CREATED, MOVIE_VIEWED уходят в топик engagement_events
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig - настройки для проверки JWT токенов
type JWTConfig struct {
	Secret string // Должен совпадать с Auth Service
}

// EngagementConfig - настройки записи пользовательской активности
type EngagementConfig struct {
	// DedupReviews включает запрет второго отзыва того же пользователя
	// на тот же фильм. По умолчанию выключен: повторные отзывы разрешены.
	DedupReviews bool
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "catalog_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "catalog_history"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "engagement_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Engagement: EngagementConfig{
			DedupReviews: getEnvBool("ENGAGEMENT_DEDUP_REVIEWS", false),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
