package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/pkg/container"
)

// check là một dependency worker cần trước khi nhận task
type check struct {
	name string
	fn   func(ctx context.Context) error
}

func checksFor(c *container.Container) []check {
	return []check{
		{"Redis Connection", c.Redis.HealthCheck},
		{"PostgreSQL", c.DB.Ping},
		{"MongoDB", c.Mongo.Ping},
		{"Object Storage", c.Storage.HealthCheck},
	}
}

// runChecks dừng ở check đầu tiên thất bại
func runChecks(ctx context.Context, checks []check) error {
	for _, ch := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := ch.fn(checkCtx)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("check", ch.name).Msg("❌ Health check failed")
			return fmt.Errorf("%s failed: %w", ch.name, err)
		}
		log.Info().Str("check", ch.name).Msg("✓ OK")
	}
	return nil
}

// healthRouter phục vụ /health (liveness) và /ready (readiness, ping lại dependencies)
func healthRouter(checks []check) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "bookcatalog-worker"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := runChecks(c.Request.Context(), checks); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return r
}

func startHealthServer(addr string, checks []check) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           healthRouter(checks),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("[Health] Failed to start")
		}
	}()

	return srv
}
