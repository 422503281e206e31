package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/pagination"
)

type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, patch model.BookPatch) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context, filter model.BookFilter, w pagination.Window) ([]model.Book, error)
	Count(ctx context.Context, filter model.BookFilter) (int64, error)
	ExistsBefore(ctx context.Context, filter model.BookFilter, id int64) (bool, error)

	// Batch reads backing the per-request loaders
	ListByAuthorIDs(ctx context.Context, authorIDs []int64) ([]model.Book, error)
	CountByAuthorIDs(ctx context.Context, authorIDs []int64) (map[int64]int64, error)

	// ExistingIDs returns the subset of ids that still exist
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	// HighestIssuedID is the last value handed out by the books id sequence, 0 if none yet
	HighestIssuedID(ctx context.Context) (int64, error)
	ListForExport(ctx context.Context, filter model.BookFilter, limit int) ([]model.ExportRow, error)
}
