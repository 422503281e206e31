package service

import (
	"context"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	Create(ctx context.Context, in model.CreateAuthorInput) (*model.Author, error)
	Update(ctx context.Context, id int64, in model.UpdateAuthorInput) (*model.Author, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// GetByID returns apperror NotFound for a missing id
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter, w pagination.Window) (*pagination.Connection[model.Author], error)
	NamesAndIDs(ctx context.Context) ([]model.AuthorNameID, error)
}
