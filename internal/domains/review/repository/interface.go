package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/review/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, id string, in model.UpdateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, id string) (bool, error)

	ListByBookID(ctx context.Context, bookID int64) ([]model.Review, error)
	ListByBookIDs(ctx context.Context, bookIDs []int64) ([]model.Review, error)
	AverageRatingByBookIDs(ctx context.Context, bookIDs []int64) (map[int64]float64, error)

	// Cleanup
	DeleteByBookID(ctx context.Context, bookID int64) (int64, error)
	DistinctBookIDs(ctx context.Context) ([]int64, error)
	DeleteByBookIDs(ctx context.Context, bookIDs []int64) (int64, error)
}
