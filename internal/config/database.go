package config

import (
	"fmt"
	"strconv"
	"time"

	"bookcatalog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc config từ environment variables và trả về DBConfig
func LoadDatabaseConfig() (*database.DBConfig, error) {
	ints := map[string]int{}
	for key, def := range map[string]string{
		"DB_PORT":            "5432",
		"DB_MAX_CONNECTIONS": "25",
		"DB_MIN_CONNECTIONS": "5",
		"DB_MAX_RETRIES":     "5",
	} {
		v, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		ints[key] = v
	}

	durations := map[string]time.Duration{}
	for key, def := range map[string]string{
		"DB_MAX_CONN_LIFETIME":   "5m",
		"DB_MAX_CONN_IDLE_TIME":  "1m",
		"DB_HEALTH_CHECK_PERIOD": "1m",
		"DB_RETRY_DELAY":         "1s",
		"DB_CONNECT_TIMEOUT":     "10s",
	} {
		v, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = v
	}

	if ints["DB_MAX_RETRIES"] < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: must be >= 1")
	}
	if ints["DB_MIN_CONNECTIONS"] > ints["DB_MAX_CONNECTIONS"] {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS must not exceed DB_MAX_CONNECTIONS")
	}

	password := getEnv("DB_PASSWORD", "secret")
	if getEnv("APP_ENV", "development") == "production" && password == "secret" {
		return nil, fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              ints["DB_PORT"],
		Username:          getEnv("DB_USER", "bookcatalog"),
		Password:          password,
		DBName:            getEnv("DB_NAME", "bookcatalog_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(ints["DB_MAX_CONNECTIONS"]),
		MinConns:          int32(ints["DB_MIN_CONNECTIONS"]),
		MaxConnLifetime:   durations["DB_MAX_CONN_LIFETIME"],
		MaxConnIdleTime:   durations["DB_MAX_CONN_IDLE_TIME"],
		HealthCheckPeriod: durations["DB_HEALTH_CHECK_PERIOD"],
		MaxRetries:        ints["DB_MAX_RETRIES"],
		RetryDelay:        durations["DB_RETRY_DELAY"],
		ConnectTimeout:    durations["DB_CONNECT_TIMEOUT"],
	}, nil
}
