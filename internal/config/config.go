package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	IncidentCacheTTL time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`

	// Webhook Config (доставка SOS-оповещений)
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys для служебных эндпоинтов
	APIKeys []string `env:"API_KEYS"`

	// Auth Config (токены провайдера идентификации)
	JWTSecret string `env:"AUTH_JWT_SECRET"`
	JWTIssuer string `env:"AUTH_JWT_ISSUER"`

	// Object storage (S3-совместимое)
	S3Endpoint  string        `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	S3AccessKey string        `env:"S3_ACCESS_KEY"`
	S3SecretKey string        `env:"S3_SECRET_KEY"`
	S3Bucket    string        `env:"S3_BUCKET" envDefault:"incident-media"`
	S3Region    string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3UseSSL    bool          `env:"S3_USE_SSL" envDefault:"false"`
	MediaURLTTL time.Duration `env:"MEDIA_URL_TTL" envDefault:"15m"`

	// Media policy
	MaxImageBytes int64 `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`
	MaxVideoBytes int64 `env:"MAX_VIDEO_BYTES" envDefault:"52428800"`

	// SOS
	SOSRatePerMinute int `env:"SOS_RATE_PER_MINUTE" envDefault:"3"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:       getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
		JWTSecret:              os.Getenv("AUTH_JWT_SECRET"),
		JWTIssuer:              os.Getenv("AUTH_JWT_ISSUER"),
		S3Endpoint:             getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:            os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:            os.Getenv("S3_SECRET_KEY"),
		S3Bucket:               getEnv("S3_BUCKET", "incident-media"),
		S3Region:               getEnv("S3_REGION", "us-east-1"),
		S3UseSSL:               getEnvAsBool("S3_USE_SSL", false),
		MediaURLTTL:            getEnvAsDuration("MEDIA_URL_TTL", 15*time.Minute),
		MaxImageBytes:          getEnvAsInt64("MAX_IMAGE_BYTES", 10<<20),
		MaxVideoBytes:          getEnvAsInt64("MAX_VIDEO_BYTES", 50<<20),
		SOSRatePerMinute:       getEnvAsInt("SOS_RATE_PER_MINUTE", 3),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET environment variable is required")
	}
	if c.MaxImageBytes <= 0 || c.MaxVideoBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES and MAX_VIDEO_BYTES must be positive")
	}
	if c.WebhookMaxRetries < 1 {
		c.WebhookMaxRetries = 1
	}
	if c.SOSRatePerMinute < 1 {
		c.SOSRatePerMinute = 1
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
