package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/shared/pagination"
)

// RepositoryInterface defines data access for authors
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	// GetByIDs returns the authors found, in no particular order
	GetByIDs(ctx context.Context, ids []int64) ([]model.Author, error)
	Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error)
	Delete(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context, filter model.AuthorFilter, w pagination.Window) ([]model.Author, error)
	Count(ctx context.Context, filter model.AuthorFilter) (int64, error)
	ExistsBefore(ctx context.Context, filter model.AuthorFilter, id int64) (bool, error)

	ListNamesAndIDs(ctx context.Context) ([]model.AuthorNameID, error)
}
