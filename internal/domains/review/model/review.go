package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcatalog-backend/internal/shared/apperror"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Review lưu trong MongoDB, book_id tham chiếu books.id bên Postgres (không có FK)
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID       int64              `bson:"book_id" json:"book_id"`
	Rating       int                `bson:"rating" json:"rating"`
	Comment      *string            `bson:"comment,omitempty" json:"comment,omitempty"`
	HelpfulCount int                `bson:"helpful_count" json:"helpful_count"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateReviewInput struct {
	BookID  int64
	Rating  int
	Comment *string
}

func (in *CreateReviewInput) Normalize() {
	in.Comment = trimComment(in.Comment)
}

func (in CreateReviewInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.BookID, validation.Required, validation.Min(int64(1))),
		validation.Field(&in.Rating, validation.Required, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&in.Comment, validation.RuneLength(0, MaxCommentLength)),
	)
	if err != nil {
		return apperror.Validation("invalid review input", err)
	}
	return nil
}

func (in CreateReviewInput) ToReview(now time.Time) *Review {
	return &Review{
		BookID:    in.BookID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateReviewInput: nil field = giữ nguyên
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

func (in *UpdateReviewInput) Normalize() {
	in.Comment = trimComment(in.Comment)
}

func (in UpdateReviewInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Rating, validation.NilOrNotEmpty, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&in.Comment, validation.RuneLength(0, MaxCommentLength)),
	)
	if err != nil {
		return apperror.Validation("invalid review input", err)
	}
	return nil
}

func (in UpdateReviewInput) IsEmpty() bool {
	return in.Rating == nil && in.Comment == nil
}

func trimComment(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// ParseID: hex ObjectID sai format là lỗi của client
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("invalid review id", err)
	}
	return oid, nil
}
