package service

import (
	"context"

	"bookcatalog-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, in model.CreateReviewInput) (*model.Review, error)
	Update(ctx context.Context, id string, in model.UpdateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}
