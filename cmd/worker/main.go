// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/pkg/container"
	"bookcatalog-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	gin.SetMode(gin.ReleaseMode)

	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("[Worker] Exited with error")
	}
}

func run(ctx context.Context) error {
	c, err := container.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("initialize container: %w", err)
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)

	log.Info().Msg("🚀 Book Catalog Worker Starting...")

	checks := checksFor(c)
	if err := runChecks(ctx, checks); err != nil {
		return fmt.Errorf("startup health check: %w", err)
	}

	srv := setupAsynqServer(cfg, initializeHandlers(c), c.Reporter)

	scheduler, err := setupScheduler(cfg)
	if err != nil {
		srv.Shutdown()
		return fmt.Errorf("register scheduled jobs: %w", err)
	}

	health := startHealthServer(cfg.HealthAddr, checks)

	waitForShutdown(srv, scheduler)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return health.Shutdown(shutdownCtx)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("[Shutdown] ✓ Stopped")
}
