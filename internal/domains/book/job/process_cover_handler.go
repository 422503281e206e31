package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/logger"
)

// ObjectStore là phần của MinIO storage mà job cần
type ObjectStore interface {
	Download(ctx context.Context, key string, maxBytes int64) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ProcessCoverHandler tạo các variant (medium, thumbnail) cho ảnh bìa vừa upload qua presigned URL
type ProcessCoverHandler struct {
	store     ObjectStore
	processor *storage.ImageProcessor
}

func NewProcessCoverHandler(store ObjectStore, processor *storage.ImageProcessor) *ProcessCoverHandler {
	return &ProcessCoverHandler{store: store, processor: processor}
}

func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ProcessCoverPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}
	if payload.ObjectKey == "" {
		return fmt.Errorf("empty object key: %w", asynq.SkipRetry)
	}

	logger.Info("Processing cover image", map[string]interface{}{
		"object_key": payload.ObjectKey,
	})

	data, err := h.store.Download(ctx, payload.ObjectKey, h.processor.MaxSize)
	if err != nil {
		return fmt.Errorf("download %s: %w", payload.ObjectKey, err)
	}

	// file không phải ảnh hợp lệ thì retry cũng vô ích
	if err := h.processor.ValidateImage(data); err != nil {
		logger.Warn("Skipping invalid cover image", map[string]interface{}{
			"object_key": payload.ObjectKey,
			"error":      err.Error(),
		})
		return fmt.Errorf("validate %s: %v: %w", payload.ObjectKey, err, asynq.SkipRetry)
	}

	variants, err := h.processor.ProcessImage(data)
	if err != nil {
		return fmt.Errorf("process %s: %v: %w", payload.ObjectKey, err, asynq.SkipRetry)
	}

	for name, img := range variants {
		key := storage.VariantKey(payload.ObjectKey, name)
		if _, err := h.store.Upload(ctx, key, img, "image/jpeg"); err != nil {
			return fmt.Errorf("upload variant %s: %w", name, err)
		}
	}

	logger.Info("Cover variants uploaded", map[string]interface{}{
		"object_key": payload.ObjectKey,
		"variants":   len(variants),
	})
	return nil
}
