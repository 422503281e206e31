package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/utils"
)

const (
	MaxTitleLength = 255
	MaxURLLength   = 1024
)

// Book represents the main book entity
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	PublishedDate time.Time `json:"published_date"`
	AuthorID      int64     `json:"author_id"`
	CoverURL      *string   `json:"cover_url,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ExportRow là một dòng trong file xlsx
type ExportRow struct {
	Book
	AuthorName    string
	AverageRating *float64
}

// ========================================
// INPUTS
// ========================================

type CreateBookInput struct {
	Title         string
	Description   *string
	PublishedDate string // YYYY-MM-DD
	AuthorID      int64
	CoverURL      *string
}

func (in *CreateBookInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.CoverURL = utils.TrimPtr(in.CoverURL)
}

func (in CreateBookInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.PublishedDate, validation.Required, utils.DateRule),
		validation.Field(&in.AuthorID, validation.Required, validation.Min(int64(1))),
		validation.Field(&in.CoverURL, validation.Length(0, MaxURLLength)),
	)
	if err != nil {
		return apperror.Validation("invalid book input", err)
	}
	return nil
}

func (in CreateBookInput) ToBook() (*Book, error) {
	published, err := utils.ParseDate(in.PublishedDate)
	if err != nil {
		return nil, apperror.Validation("invalid published_date", err)
	}
	return &Book{
		Title:         in.Title,
		Description:   in.Description,
		PublishedDate: published,
		AuthorID:      in.AuthorID,
		CoverURL:      in.CoverURL,
	}, nil
}

// UpdateBookInput: nil field = giữ nguyên
type UpdateBookInput struct {
	Title         *string
	Description   *string
	PublishedDate *string
	AuthorID      *int64
	CoverURL      *string
}

func (in *UpdateBookInput) Normalize() {
	in.Title = utils.TrimPtr(in.Title)
	in.CoverURL = utils.TrimPtr(in.CoverURL)
}

func (in UpdateBookInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.PublishedDate, validation.NilOrNotEmpty, utils.DateRule),
		validation.Field(&in.AuthorID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&in.CoverURL, validation.Length(0, MaxURLLength)),
	)
	if err != nil {
		return apperror.Validation("invalid book input", err)
	}
	return nil
}

type BookPatch struct {
	Title         *string
	Description   *string
	PublishedDate *time.Time
	AuthorID      *int64
	CoverURL      *string
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.PublishedDate == nil && p.AuthorID == nil && p.CoverURL == nil
}

func (in UpdateBookInput) ToPatch() (BookPatch, error) {
	published, err := utils.ParseDatePtr(in.PublishedDate)
	if err != nil {
		return BookPatch{}, apperror.Validation("invalid published_date", err)
	}
	return BookPatch{
		Title:         in.Title,
		Description:   in.Description,
		PublishedDate: published,
		AuthorID:      in.AuthorID,
		CoverURL:      in.CoverURL,
	}, nil
}

// ========================================
// FILTER
// ========================================

type BookFilter struct {
	Title         *string // case-insensitive substring
	AuthorName    *string // case-insensitive substring on the author's name
	PublishedYear *int
}

func (f BookFilter) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.PublishedYear, utils.YearRule),
	)
	if err != nil {
		return apperror.Validation("invalid book filter", err)
	}
	return nil
}
