package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/config"
)

// RedisClient giữ connection pool dùng cho cache tên tác giả.
// Queue (asynq) mở pool riêng trên cùng Redis.
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{
		Client: redis.NewClient(&redis.Options{
			Addr:         cfg.Host,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   2,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		}),
	}
}

// Connect chỉ ping; lỗi ở đây không chặn startup vì cache có thể miss
func (r *RedisClient) Connect(ctx context.Context) error {
	addr := r.Client.Options().Addr
	if err := r.HealthCheck(ctx); err != nil {
		return err
	}
	log.Info().Str("addr", addr).Msg("[REDIS] Connected")
	return nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.Client.Options().Addr, err)
	}
	return nil
}

// PoolStats: số liệu pool cho /metrics; zero value khi chưa có client
func (r *RedisClient) PoolStats() redis.PoolStats {
	if r.Client == nil {
		return redis.PoolStats{}
	}
	return *r.Client.PoolStats()
}

func (r *RedisClient) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
