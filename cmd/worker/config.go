package main

import (
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/config"
)

// Config holds the worker-only settings; shared ones come from config.Load
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
	HealthAddr    string
}

func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		RedisAddr:     app.Redis.Host,
		RedisPassword: app.Redis.Password,
		RedisDB:       app.Redis.DB,
		Concurrency:   app.Worker.Concurrency,
		HealthAddr:    app.Worker.HealthAddr,
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.Concurrency).
		Str("health_addr", cfg.HealthAddr).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
