package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/sqlfilter"
)

func TestBuildBookUpdate(t *testing.T) {
	title := "Dune Messiah"
	author := int64(4)

	query, args := buildBookUpdate(12, model.BookPatch{Title: &title, AuthorID: &author})

	assert.Contains(t, query, "SET title = $1, author_id = $2, updated_at = NOW() WHERE id = $3")
	assert.Equal(t, []any{title, author, int64(12)}, args)
}

func TestBookPredicatesCombineAllFilters(t *testing.T) {
	title, author, year := "dune", "herbert", 1965

	b := sqlfilter.New(bookPredicates(model.BookFilter{Title: &title, AuthorName: &author, PublishedYear: &year})...)
	assert.Equal(t,
		" WHERE title ILIKE $1 AND author_id IN (SELECT id FROM authors WHERE name ILIKE $2)"+
			" AND published_date >= $3 AND published_date < $4",
		b.Where())
	assert.Len(t, b.Args(), 4)
}

func TestBookPredicatesSkipEmpty(t *testing.T) {
	empty := ""
	assert.Empty(t, bookPredicates(model.BookFilter{Title: &empty, AuthorName: &empty}))
}
