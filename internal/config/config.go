package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Commerce    CommerceConfig
	Catalog     CatalogConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	API         APIConfig
}

type CommerceConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CatalogConfig struct {
	RatingConcurrency int
	RatingTimeout     time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr           string
	IdempotencyTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type APIConfig struct {
	AllowedOrigins  []string
	AdminAPIKeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	commerceTimeout, err := getDurationOrViper("COMMERCE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	ratingTimeout, err := getDurationOrViper("RATING_TIMEOUT", 3*time.Second)
	if err != nil {
		return nil, err
	}
	idempotencyTTL, err := getDurationOrViper("CHECKOUT_IDEMPOTENCY_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	ratingConcurrency, err := getIntOrViper("RATING_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Commerce: CommerceConfig{
			BaseURL: strings.TrimSuffix(getEnvOrViper("COMMERCE_BASE_URL", ""), "/"),
			Timeout: commerceTimeout,
		},
		Catalog: CatalogConfig{
			RatingConcurrency: ratingConcurrency,
			RatingTimeout:     ratingTimeout,
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:           getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			IdempotencyTTL: idempotencyTTL,
		},
		Kafka: KafkaConfig{
			Brokers: splitCSV(getEnvOrViper("KAFKA_BROKERS", "")),
			Topic:   getEnvOrViper("KAFKA_TOPIC", "storefront.events"),
		},
		API: APIConfig{
			AllowedOrigins:  splitCSV(getEnvOrViper("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
			AdminAPIKeyHash: getEnvOrViper("ADMIN_API_KEY_HASH", ""),
		},
	}

	// Validate required fields
	if cfg.Commerce.BaseURL == "" {
		return nil, fmt.Errorf("COMMERCE_BASE_URL is required")
	}
	if cfg.Catalog.RatingConcurrency < 1 {
		return nil, fmt.Errorf("RATING_CONCURRENCY must be at least 1")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getDurationOrViper(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getIntOrViper(key string, defaultValue int) (int, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DSN builds the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
