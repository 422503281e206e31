package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/shared"
)

// Enqueuer là phần của queue mà services cần, dễ fake trong test
type Enqueuer interface {
	EnqueuePurgeBookReviews(ctx context.Context, bookID int64) error
	EnqueueProcessCover(ctx context.Context, objectKey string) error
}

// EnqueueCounter đếm task theo type và kết quả (metrics.Registry)
type EnqueueCounter interface {
	CountEnqueue(taskType string, err error)
}

type Client struct {
	client  *asynq.Client
	counter EnqueueCounter
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db}),
	}
}

// WithCounter gắn counter; nil thì bỏ qua
func (c *Client) WithCounter(counter EnqueueCounter) *Client {
	c.counter = counter
	return c
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) EnqueuePurgeBookReviews(ctx context.Context, bookID int64) error {
	task, err := NewPurgeBookReviewsTask(bookID)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
		// book id không bao giờ được tái sử dụng nên task id cố định chống enqueue trùng
		asynq.TaskID(fmt.Sprintf("purge-reviews-%d", bookID)),
	)
}

func (c *Client) EnqueueProcessCover(ctx context.Context, objectKey string) error {
	task, err := NewProcessCoverTask(objectKey)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	info, err := c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// cùng TaskID đang chờ trong queue, coi như đã enqueue; info là nil ở nhánh này
		log.Debug().Str("type", task.Type()).Msg("Task already queued")
		c.count(task.Type(), nil)
		return nil
	}
	c.count(task.Type(), err)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	log.Debug().Str("type", task.Type()).Str("task_id", info.ID).Str("queue", info.Queue).Msg("Task enqueued")
	return nil
}

func (c *Client) count(taskType string, err error) {
	if c.counter != nil {
		c.counter.CountEnqueue(taskType, err)
	}
}

// ========================================
// TASK CONSTRUCTORS
// ========================================

func NewPurgeBookReviewsTask(bookID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.PurgeBookReviewsPayload{BookID: bookID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(shared.TypePurgeBookReviews, payload), nil
}

func NewProcessCoverTask(objectKey string) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.ProcessCoverPayload{ObjectKey: objectKey})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(shared.TypeProcessCover, payload), nil
}
