package main

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/errtrack"
	"bookcatalog-backend/internal/shared"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *Config, handlers *HandlerRegistry, reporter errtrack.Reporter) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueDefault: 10,
				shared.QueueLow:     3,
			},
			Concurrency: cfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)

				log.Error().Err(err).
					Str("type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("[Asynq] ❌ Task failed")

				// chỉ report lần thử cuối hoặc lỗi không retry để tránh spam
				if retried >= maxRetry || errors.Is(err, asynq.SkipRetry) {
					reporter.Capture(ctx, err, map[string]string{
						"source":    "worker",
						"task_type": task.Type(),
					})
				}
			}),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown chờ các task đang chạy xong (asynq tự áp ShutdownTimeout)
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] ✓ Gracefully stopped")
}
