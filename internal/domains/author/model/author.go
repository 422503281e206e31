package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/utils"
)

const (
	MaxNameLength = 255
	MaxURLLength  = 1024
)

type Author struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Biography *string    `json:"biography,omitempty"`
	BornDate  *time.Time `json:"born_date,omitempty"`
	PhotoURL  *string    `json:"photo_url,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AuthorNameID is the lightweight projection used by author pickers
type AuthorNameID struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ========================================
// INPUTS
// ========================================

type CreateAuthorInput struct {
	Name      string
	Biography *string
	BornDate  *string // YYYY-MM-DD
	PhotoURL  *string
}

func (in *CreateAuthorInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

func (in CreateAuthorInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&in.BornDate, utils.DateRule),
		validation.Field(&in.PhotoURL, validation.Length(0, MaxURLLength)),
	)
	if err != nil {
		return apperror.Validation("invalid author input", err)
	}
	return nil
}

// ToAuthor assumes Validate passed
func (in CreateAuthorInput) ToAuthor() (*Author, error) {
	born, err := utils.ParseDatePtr(in.BornDate)
	if err != nil {
		return nil, apperror.Validation("invalid born_date", err)
	}
	return &Author{
		Name:      in.Name,
		Biography: in.Biography,
		BornDate:  born,
		PhotoURL:  in.PhotoURL,
	}, nil
}

// UpdateAuthorInput: nil field = giữ nguyên giá trị cũ
type UpdateAuthorInput struct {
	Name      *string
	Biography *string
	BornDate  *string
	PhotoURL  *string
}

func (in *UpdateAuthorInput) Normalize() {
	in.Name = utils.TrimPtr(in.Name)
}

func (in UpdateAuthorInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&in.BornDate, validation.NilOrNotEmpty, utils.DateRule),
		validation.Field(&in.PhotoURL, validation.Length(0, MaxURLLength)),
	)
	if err != nil {
		return apperror.Validation("invalid author input", err)
	}
	return nil
}

// AuthorPatch is the typed form of UpdateAuthorInput handed to the repository
type AuthorPatch struct {
	Name      *string
	Biography *string
	BornDate  *time.Time
	PhotoURL  *string
}

func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && p.Biography == nil && p.BornDate == nil && p.PhotoURL == nil
}

func (in UpdateAuthorInput) ToPatch() (AuthorPatch, error) {
	born, err := utils.ParseDatePtr(in.BornDate)
	if err != nil {
		return AuthorPatch{}, apperror.Validation("invalid born_date", err)
	}
	return AuthorPatch{
		Name:      in.Name,
		Biography: in.Biography,
		BornDate:  born,
		PhotoURL:  in.PhotoURL,
	}, nil
}

// ========================================
// FILTER
// ========================================

type AuthorFilter struct {
	Name      *string // case-insensitive substring
	BirthYear *int
}

func (f AuthorFilter) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.BirthYear, utils.YearRule),
	)
	if err != nil {
		return apperror.Validation("invalid author filter", err)
	}
	return nil
}
