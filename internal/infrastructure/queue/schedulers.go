package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
			&asynq.SchedulerOpts{
				Location: time.UTC,
				LogLevel: asynq.InfoLevel,
			},
		),
	}
}

func (s *Scheduler) Start() error { return s.scheduler.Start() }

func (s *Scheduler) Shutdown() { s.scheduler.Shutdown() }

// RegisterMaintenanceJobs đăng ký các cron job định kỳ
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerSweepOrphanReviewsJob()
}

// ================================================
// Sweep orphan reviews (daily at 3 AM)
// ================================================
// Bắt các review còn sót khi enqueue purge lúc xóa book bị lỗi
func (s *Scheduler) registerSweepOrphanReviewsJob() error {
	payload, err := json.Marshal(shared.SweepOrphanReviewsPayload{})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		"0 3 * * *",
		asynq.NewTask(shared.TypeSweepOrphanReviews, payload),
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanReviews job", err)
		return err
	}

	logger.Info("✓ Registered SweepOrphanReviews: daily at 3 AM", map[string]interface{}{})
	return nil
}
