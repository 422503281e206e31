package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/logger"
)

// ReviewDeleter là phần của review repository mà các cleanup job cần
type ReviewDeleter interface {
	DeleteByBookID(ctx context.Context, bookID int64) (int64, error)
	DistinctBookIDs(ctx context.Context) ([]int64, error)
	DeleteByBookIDs(ctx context.Context, bookIDs []int64) (int64, error)
}

// PurgeBookReviewsHandler xoá reviews của một book vừa bị xoá bên Postgres
type PurgeBookReviewsHandler struct {
	reviews ReviewDeleter
}

func NewPurgeBookReviewsHandler(reviews ReviewDeleter) *PurgeBookReviewsHandler {
	return &PurgeBookReviewsHandler{reviews: reviews}
}

func (h *PurgeBookReviewsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.PurgeBookReviewsPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}
	if payload.BookID <= 0 {
		return fmt.Errorf("invalid book id %d: %w", payload.BookID, asynq.SkipRetry)
	}

	deleted, err := h.reviews.DeleteByBookID(ctx, payload.BookID)
	if err != nil {
		return fmt.Errorf("purge reviews of book %d: %w", payload.BookID, err)
	}

	logger.Info("Purged reviews of deleted book", map[string]interface{}{
		"book_id":       payload.BookID,
		"deleted_count": deleted,
	})
	return nil
}
