package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/shared/apperror"
)

func strp(s string) *string { return &s }

func TestCreateBookInputValidate(t *testing.T) {
	valid := CreateBookInput{Title: "X", PublishedDate: "2020-01-01", AuthorID: 1}
	assert.NoError(t, valid.Validate())

	for name, in := range map[string]CreateBookInput{
		"missing title":     {PublishedDate: "2020-01-01", AuthorID: 1},
		"missing date":      {Title: "X", AuthorID: 1},
		"malformed date":    {Title: "X", PublishedDate: "2020/01/01", AuthorID: 1},
		"missing author id": {Title: "X", PublishedDate: "2020-01-01"},
	} {
		t.Run(name, func(t *testing.T) {
			err := in.Validate()
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestCreateBookToBook(t *testing.T) {
	in := CreateBookInput{Title: "  Dune ", PublishedDate: "1965-08-01", AuthorID: 3, CoverURL: strp(" ")}
	in.Normalize()
	b, err := in.ToBook()
	require.NoError(t, err)

	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC), b.PublishedDate)
	assert.Equal(t, "", *b.CoverURL)
}

func TestUpdateBookInput(t *testing.T) {
	assert.NoError(t, UpdateBookInput{}.Validate())
	assert.Error(t, UpdateBookInput{Title: strp("")}.Validate())

	zero := int64(0)
	assert.Error(t, UpdateBookInput{AuthorID: &zero}.Validate())

	p, err := UpdateBookInput{PublishedDate: strp("2001-02-03")}.ToPatch()
	require.NoError(t, err)
	assert.False(t, p.IsEmpty())
	assert.Equal(t, 2001, p.PublishedDate.Year())
}

func TestBookFilterValidate(t *testing.T) {
	y := 2020
	bad := 10000
	assert.NoError(t, BookFilter{PublishedYear: &y, Title: strp("x"), AuthorName: strp("y")}.Validate())
	assert.Error(t, BookFilter{PublishedYear: &bad}.Validate())
}
