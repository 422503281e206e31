package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Ping kiểm tra database connection có còn sống không, dùng bởi health endpoint
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close is idempotent
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats là snapshot của pool, expose qua /api/v1/health và metrics
type PoolStats struct {
	AcquiredConns   int32         `json:"acquired_conns"`
	IdleConns       int32         `json:"idle_conns"`
	TotalConns      int32         `json:"total_conns"`
	MaxConns        int32         `json:"max_conns"`
	AcquireCount    int64         `json:"acquire_count"`
	EmptyAcquires   int64         `json:"empty_acquire_count"`
	CanceledAcquire int64         `json:"canceled_acquire_count"`
	AvgAcquireTime  time.Duration `json:"avg_acquire_ns"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:   raw.AcquiredConns(),
		IdleConns:       raw.IdleConns(),
		TotalConns:      raw.TotalConns(),
		MaxConns:        raw.MaxConns(),
		AcquireCount:    raw.AcquireCount(),
		EmptyAcquires:   raw.EmptyAcquireCount(),
		CanceledAcquire: raw.CanceledAcquireCount(),
		AvgAcquireTime:  avgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func avgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}
