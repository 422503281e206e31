package main

import (
	"github.com/hibiken/asynq"

	bookJob "bookcatalog-backend/internal/domains/book/job"
	reviewJob "bookcatalog-backend/internal/domains/review/job"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Review cleanup
	purgeBookReviews   *reviewJob.PurgeBookReviewsHandler
	sweepOrphanReviews *reviewJob.SweepOrphanReviewsHandler

	// Media
	processCover *bookJob.ProcessCoverHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		purgeBookReviews:   reviewJob.NewPurgeBookReviewsHandler(c.ReviewRepo),
		sweepOrphanReviews: reviewJob.NewSweepOrphanReviewsHandler(c.ReviewRepo, c.BookRepo),
		processCover:       bookJob.NewProcessCoverHandler(c.Storage, storage.NewImageProcessor()),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePurgeBookReviews, h.purgeBookReviews.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanReviews, h.sweepOrphanReviews.ProcessTask)
	mux.HandleFunc(shared.TypeProcessCover, h.processCover.ProcessTask)
}
