package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/pkg/logger"
)

const sweepBatchSize = 500

// BookChecker trả về các id vẫn còn tồn tại trong bảng books
type BookChecker interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	HighestIssuedID(ctx context.Context) (int64, error)
}

// SweepOrphanReviewsHandler dọn reviews trỏ tới book đã bị xóa.
// Bắt những purge task bị lỡ (enqueue lỗi hoặc hết retry).
// Review cho book id chưa được cấp (lớn hơn id cuối của sequence) được giữ lại.
type SweepOrphanReviewsHandler struct {
	reviews ReviewDeleter
	books   BookChecker
}

func NewSweepOrphanReviewsHandler(reviews ReviewDeleter, books BookChecker) *SweepOrphanReviewsHandler {
	return &SweepOrphanReviewsHandler{reviews: reviews, books: books}
}

func (h *SweepOrphanReviewsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	ids, err := h.reviews.DistinctBookIDs(ctx)
	if err != nil {
		return fmt.Errorf("list review book ids: %w", err)
	}

	highest, err := h.books.HighestIssuedID(ctx)
	if err != nil {
		return fmt.Errorf("read highest book id: %w", err)
	}
	ids = issuedOnly(ids, highest)

	var orphans []int64
	for start := 0; start < len(ids); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(ids))
		batch := ids[start:end]

		existing, err := h.books.ExistingIDs(ctx, batch)
		if err != nil {
			return fmt.Errorf("check book ids: %w", err)
		}
		orphans = append(orphans, missing(batch, existing)...)
	}

	if len(orphans) == 0 {
		logger.Debug("Orphan review sweep: nothing to delete")
		return nil
	}

	deleted, err := h.reviews.DeleteByBookIDs(ctx, orphans)
	if err != nil {
		return fmt.Errorf("delete orphan reviews: %w", err)
	}

	logger.Info("Orphan reviews swept", map[string]interface{}{
		"orphan_books":  len(orphans),
		"deleted_count": deleted,
	})
	return nil
}

func missing(ids, existing []int64) []int64 {
	found := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	var out []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func issuedOnly(ids []int64, highest int64) []int64 {
	out := ids[:0:0]
	for _, id := range ids {
		if id >= 1 && id <= highest {
			out = append(out, id)
		}
	}
	return out
}
