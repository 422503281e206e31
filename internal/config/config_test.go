package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "bookcatalog", cfg.Mongo.Database)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.UploadURLExpiry)
	assert.Equal(t, "http://localhost:9000", cfg.MinIO.PublicURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Sentry.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_ENDPOINT", "s3.example.com")
	t.Setenv("UPLOAD_URL_EXPIRY", "30m")
	t.Setenv("FRONTEND_URL", "https://a.example.com, https://b.example.com")
	t.Setenv("WORKER_CONCURRENCY", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "https://s3.example.com", cfg.MinIO.PublicURL)
	assert.Equal(t, 30*time.Minute, cfg.MinIO.UploadURLExpiry)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
}

func TestPublicURLTrailingSlashTrimmed(t *testing.T) {
	t.Setenv("MINIO_PUBLIC_URL", "https://cdn.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", cfg.MinIO.PublicURL)
}

func TestProductionRejectsDefaultMinIOKeys(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestSentryWithoutDSNOnlyWarns(t *testing.T) {
	t.Setenv("ENABLE_SENTRY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Sentry.Enabled)
	assert.Empty(t, cfg.Sentry.DSN)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestLoadDatabaseConfigInvalidValues(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_PORT")

	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_MIN_CONNECTIONS", "50")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}

func TestMalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("MINIO_USE_SSL", "sometimes")
	t.Setenv("UPLOAD_URL_EXPIRY", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.False(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.UploadURLExpiry)
}
