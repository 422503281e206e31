// Package loader gom các truy vấn lồng nhau (Book.author, Author.books, ...) thành một query mỗi batch.
// Mỗi request có bộ Loaders riêng, cache không chia sẻ giữa các request.
package loader

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"

	authormodel "bookcatalog-backend/internal/domains/author/model"
	bookmodel "bookcatalog-backend/internal/domains/book/model"
	reviewmodel "bookcatalog-backend/internal/domains/review/model"
)

const (
	batchWait     = 2 * time.Millisecond
	batchCapacity = 500
)

// Loader names, dùng làm label cho metrics
const (
	NameAuthorByID            = "author_by_id"
	NameBooksByAuthorID       = "books_by_author_id"
	NameBookCountByAuthorID   = "book_count_by_author_id"
	NameReviewsByBookID       = "reviews_by_book_id"
	NameAverageRatingByBookID = "average_rating_by_book_id"
)

type AuthorSource interface {
	GetByIDs(ctx context.Context, ids []int64) ([]authormodel.Author, error)
}

type BookSource interface {
	ListByAuthorIDs(ctx context.Context, authorIDs []int64) ([]bookmodel.Book, error)
	CountByAuthorIDs(ctx context.Context, authorIDs []int64) (map[int64]int64, error)
}

type ReviewSource interface {
	ListByBookIDs(ctx context.Context, bookIDs []int64) ([]reviewmodel.Review, error)
	AverageRatingByBookIDs(ctx context.Context, bookIDs []int64) (map[int64]float64, error)
}

type Sources struct {
	Authors AuthorSource
	Books   BookSource
	Reviews ReviewSource
}

// BatchObserver nhận kích thước mỗi batch (Prometheus histogram)
type BatchObserver interface {
	ObserveBatch(loader string, size int)
}

type Loaders struct {
	AuthorByID            *dataloader.Loader[int64, *authormodel.Author]
	BooksByAuthorID       *dataloader.Loader[int64, []bookmodel.Book]
	BookCountByAuthorID   *dataloader.Loader[int64, int64]
	ReviewsByBookID       *dataloader.Loader[int64, []reviewmodel.Review]
	AverageRatingByBookID *dataloader.Loader[int64, *float64]
}

func NewLoaders(src Sources, obs BatchObserver) *Loaders {
	return &Loaders{
		AuthorByID:            newLoader(NameAuthorByID, BatchAuthorsByID(src.Authors), obs),
		BooksByAuthorID:       newLoader(NameBooksByAuthorID, BatchBooksByAuthorID(src.Books), obs),
		BookCountByAuthorID:   newLoader(NameBookCountByAuthorID, BatchBookCountByAuthorID(src.Books), obs),
		ReviewsByBookID:       newLoader(NameReviewsByBookID, BatchReviewsByBookID(src.Reviews), obs),
		AverageRatingByBookID: newLoader(NameAverageRatingByBookID, BatchAverageRatingByBookID(src.Reviews), obs),
	}
}

func newLoader[V any](name string, fn dataloader.BatchFunc[int64, V], obs BatchObserver) *dataloader.Loader[int64, V] {
	observed := func(ctx context.Context, keys []int64) []*dataloader.Result[V] {
		if obs != nil {
			obs.ObserveBatch(name, len(keys))
		}
		return fn(ctx, keys)
	}
	return dataloader.NewBatchedLoader(observed,
		dataloader.WithWait[int64, V](batchWait),
		dataloader.WithBatchCapacity[int64, V](batchCapacity),
	)
}

// ========================================
// CONTEXT
// ========================================

type ctxKey struct{}

func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// For trả về Loaders của request, nil nếu middleware chưa chạy
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(ctxKey{}).(*Loaders)
	return l
}

// Middleware gắn một bộ Loaders mới vào mỗi request
func Middleware(src Sources, obs BatchObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithLoaders(c.Request.Context(), NewLoaders(src, obs))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
