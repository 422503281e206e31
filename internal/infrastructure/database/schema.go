package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema tạo bảng authors/books nếu chưa tồn tại. Idempotent, chạy lúc khởi động.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	// simple protocol cho phép nhiều statement trong một lần Exec
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info().Msg("[DATABASE] Schema ensured")
	return nil
}
