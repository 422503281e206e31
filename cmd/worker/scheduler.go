package main

import (
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *Config) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		return nil, err
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}
