package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	Create(ctx context.Context, in model.CreateBookInput) (*model.Book, error)
	Update(ctx context.Context, id int64, in model.UpdateBookInput) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter, w pagination.Window) (*pagination.Connection[model.Book], error)

	ExportXLSX(ctx context.Context, filter model.BookFilter, limit int) (*excelize.File, int, error)
}

// RatingReader trả về điểm trung bình theo book id; book không có review thì vắng mặt trong map
type RatingReader interface {
	AverageRatingByBookIDs(ctx context.Context, bookIDs []int64) (map[int64]float64, error)
}

// ObjectLocator nhận diện URL thuộc bucket của mình
type ObjectLocator interface {
	KeyFromURL(raw string) (string, bool)
}
