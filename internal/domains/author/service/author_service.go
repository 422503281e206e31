package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/author/repository"
	"bookcatalog-backend/internal/shared/pagination"
	"bookcatalog-backend/pkg/cache"
)

const (
	namesCacheKey = "authors:names"
	namesCacheTTL = 10 * time.Minute
)

type authorService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewAuthorService: cache chỉ dùng cho danh sách tên (author picker), các query khác đi thẳng DB
func NewAuthorService(repo repository.RepositoryInterface, c cache.Cache) ServiceInterface {
	return &authorService{repo: repo, cache: c}
}

func (s *authorService) Create(ctx context.Context, in model.CreateAuthorInput) (*model.Author, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	a, err := in.ToAuthor()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	s.invalidateNames(ctx)
	log.Info().Int64("author_id", created.ID).Msg("Author created")
	return created, nil
}

func (s *authorService) Update(ctx context.Context, id int64, in model.UpdateAuthorInput) (*model.Author, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	patch, err := in.ToPatch()
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		s.invalidateNames(ctx)
	}
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateNames(ctx)
		log.Info().Int64("author_id", id).Msg("Author deleted")
	}
	return deleted, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter, w pagination.Window) (*pagination.Connection[model.Author], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	src := pagination.SourceFuncs[model.Author]{
		FetchFn: func(ctx context.Context, w pagination.Window) ([]model.Author, error) {
			return s.repo.List(ctx, filter, w)
		},
		CountFn: func(ctx context.Context) (int64, error) {
			return s.repo.Count(ctx, filter)
		},
		ExistsBeforeFn: func(ctx context.Context, id int64) (bool, error) {
			return s.repo.ExistsBefore(ctx, filter, id)
		},
	}
	return pagination.Paginate[model.Author](ctx, src, w, func(a model.Author) int64 { return a.ID })
}

// NamesAndIDs: cache-aside, lỗi Redis không làm fail request
func (s *authorService) NamesAndIDs(ctx context.Context) ([]model.AuthorNameID, error) {
	var cached []model.AuthorNameID
	found, err := s.cache.Get(ctx, namesCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("Author names cache read failed")
	}
	if found {
		return cached, nil
	}

	names, err := s.repo.ListNamesAndIDs(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []model.AuthorNameID{}
	}

	if err := s.cache.Set(ctx, namesCacheKey, names, namesCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Author names cache write failed")
	}
	return names, nil
}

func (s *authorService) invalidateNames(ctx context.Context) {
	if err := s.cache.Delete(ctx, namesCacheKey); err != nil {
		log.Warn().Err(err).Msg("Author names cache invalidation failed")
	}
}
