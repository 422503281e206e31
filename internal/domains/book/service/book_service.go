package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/repository"
	"bookcatalog-backend/internal/infrastructure/errtrack"
	"bookcatalog-backend/internal/infrastructure/queue"
	"bookcatalog-backend/internal/shared/pagination"
)

type bookService struct {
	repo     repository.RepositoryInterface
	ratings  RatingReader
	queue    queue.Enqueuer
	locator  ObjectLocator
	reporter errtrack.Reporter
}

func NewBookService(
	repo repository.RepositoryInterface,
	ratings RatingReader,
	q queue.Enqueuer,
	locator ObjectLocator,
	reporter errtrack.Reporter,
) ServiceInterface {
	if reporter == nil {
		reporter = errtrack.Noop{}
	}
	return &bookService{
		repo:     repo,
		ratings:  ratings,
		queue:    q,
		locator:  locator,
		reporter: reporter,
	}
}

func (s *bookService) Create(ctx context.Context, in model.CreateBookInput) (*model.Book, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	b, err := in.ToBook()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("book_id", created.ID).Int64("author_id", created.AuthorID).Msg("Book created")
	s.scheduleCover(ctx, created.CoverURL)
	return created, nil
}

func (s *bookService) Update(ctx context.Context, id int64, in model.UpdateBookInput) (*model.Book, error) {
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

	if patch.CoverURL != nil {
		s.scheduleCover(ctx, updated.CoverURL)
	}
	return updated, nil
}

// Delete xoá book trong Postgres; reviews bên Mongo được dọn bất đồng bộ
func (s *bookService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return false, err
	}

	log.Info().Int64("book_id", id).Msg("Book deleted")

	if s.queue != nil {
		if err := s.queue.EnqueuePurgeBookReviews(ctx, id); err != nil {
			// sweep job hằng ngày sẽ dọn lại những review mồ côi
			log.Error().Err(err).Int64("book_id", id).Msg("Failed to enqueue review purge")
			s.reporter.Capture(ctx, err, map[string]string{"task": "review:purge_by_book"})
		}
	}
	return true, nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter, w pagination.Window) (*pagination.Connection[model.Book], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	src := pagination.SourceFuncs[model.Book]{
		FetchFn: func(ctx context.Context, w pagination.Window) ([]model.Book, error) {
			return s.repo.List(ctx, filter, w)
		},
		CountFn: func(ctx context.Context) (int64, error) {
			return s.repo.Count(ctx, filter)
		},
		ExistsBeforeFn: func(ctx context.Context, id int64) (bool, error) {
			return s.repo.ExistsBefore(ctx, filter, id)
		},
	}
	return pagination.Paginate[model.Book](ctx, src, w, func(b model.Book) int64 { return b.ID })
}

// scheduleCover: chỉ ảnh nằm trong bucket của mình mới được tạo variants
func (s *bookService) scheduleCover(ctx context.Context, coverURL *string) {
	if s.queue == nil || s.locator == nil || coverURL == nil || *coverURL == "" {
		return
	}
	key, ok := s.locator.KeyFromURL(*coverURL)
	if !ok {
		return
	}
	if err := s.queue.EnqueueProcessCover(ctx, key); err != nil {
		log.Warn().Err(err).Str("object_key", key).Msg("Failed to enqueue cover processing")
		s.reporter.Capture(ctx, err, map[string]string{"task": "media:process_cover"})
	}
}
