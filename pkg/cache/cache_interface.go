package cache

import (
	"context"
	"time"
)

// Cache lưu giá trị dạng JSON theo key; service chỉ phụ thuộc interface này
// để test dùng miniredis hoặc fake.
type Cache interface {
	// Get trả found=false khi miss; dest chỉ được ghi khi hit
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
