package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	MinIO  MinIOConfig
	Sentry SentryConfig
	CORS   CORSConfig
	Worker WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL là base URL mà client dùng để đọc object (có thể khác Endpoint khi sau proxy)
	PublicURL       string
	UploadURLExpiry time.Duration
}

type SentryConfig struct {
	Enabled bool
	DSN     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type WorkerConfig struct {
	Concurrency int
	HealthAddr  string
}

const (
	defaultMinIOAccessKey = "minioadmin"
	defaultMinIOSecretKey = "minioadmin"
)

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "bookcatalog"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:       getEnv("MINIO_ACCESS_KEY", defaultMinIOAccessKey),
			SecretKey:       getEnv("MINIO_SECRET_KEY", defaultMinIOSecretKey),
			Bucket:          getEnv("MINIO_BUCKET", "bookcatalog"),
			UseSSL:          getEnvBool("MINIO_USE_SSL", false),
			UploadURLExpiry: getEnvDuration("UPLOAD_URL_EXPIRY", 15*time.Minute),
		},
		Sentry: SentryConfig{
			Enabled: getEnvBool("ENABLE_SENTRY", false),
			DSN:     getEnv("SENTRY_DSN", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("FRONTEND_URL", "http://localhost:3000")),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
			HealthAddr:  getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
	}

	cfg.MinIO.PublicURL = strings.TrimRight(getEnv("MINIO_PUBLIC_URL", defaultPublicURL(cfg.MinIO)), "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate: fail sớm khi config sẽ làm app chạy sai
func (c *Config) Validate() error {
	if c.MinIO.UploadURLExpiry <= 0 || c.MinIO.UploadURLExpiry > 7*24*time.Hour {
		return fmt.Errorf("UPLOAD_URL_EXPIRY must be between 1s and 7 days")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}

	// Production environment không được dùng credential mặc định
	if c.App.IsProduction() {
		if c.MinIO.AccessKey == defaultMinIOAccessKey || c.MinIO.SecretKey == defaultMinIOSecretKey {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set in production")
		}
	}

	// Sentry bật nhưng thiếu DSN: chỉ cảnh báo, app vẫn chạy
	if c.Sentry.Enabled && c.Sentry.DSN == "" {
		log.Warn().Msg("ENABLE_SENTRY is set but SENTRY_DSN is empty - error tracking disabled")
	}

	return nil
}

func defaultPublicURL(m MinIOConfig) string {
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + m.Endpoint
}

// ========================================
// ENV HELPERS
// ========================================

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// envAs: giá trị sai định dạng → cảnh báo và dùng default, không làm app fail
func envAs[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := parse(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid env value, falling back to default")
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	return envAs(key, defaultValue, strconv.Atoi)
}

func getEnvBool(key string, defaultValue bool) bool {
	return envAs(key, defaultValue, strconv.ParseBool)
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return envAs(key, defaultValue, time.ParseDuration)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
