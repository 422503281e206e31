package shared

// Task types (asynq)
const (
	TypePurgeBookReviews   = "review:purge_by_book"
	TypeSweepOrphanReviews = "review:sweep_orphans"
	TypeProcessCover       = "media:process_cover"
)

// Queues và priority tương ứng trong worker
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// PurgeBookReviewsPayload: xóa toàn bộ review của một book đã bị xóa
type PurgeBookReviewsPayload struct {
	BookID int64 `json:"book_id"`
}

// ProcessCoverPayload: object key trong bucket của ảnh vừa upload
type ProcessCoverPayload struct {
	ObjectKey string `json:"object_key"`
}

type SweepOrphanReviewsPayload struct{}
