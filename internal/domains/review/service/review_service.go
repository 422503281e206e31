package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/domains/review/repository"
)

type reviewService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

// NewReviewService: tạo review không kiểm tra book tồn tại, reviews mồ côi do job dọn
func NewReviewService(repo repository.RepositoryInterface) ServiceInterface {
	return &reviewService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *reviewService) Create(ctx context.Context, in model.CreateReviewInput) (*model.Review, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, in.ToReview(s.now()))
	if err != nil {
		return nil, err
	}
	log.Info().Str("review_id", created.ID.Hex()).Int64("book_id", created.BookID).Msg("Review created")
	return created, nil
}

func (s *reviewService) Update(ctx context.Context, id string, in model.UpdateReviewInput) (*model.Review, error) {
	if _, err := model.ParseID(id); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *reviewService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *reviewService) GetByID(ctx context.Context, id string) (*model.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	reviews, err := s.repo.ListByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}
