package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/shared/sqlfilter"
)

func TestBuildAuthorUpdateOnlySetsProvidedFields(t *testing.T) {
	name := "Grace Hopper"
	born := time.Date(1906, 12, 9, 0, 0, 0, 0, time.UTC)

	query, args := buildAuthorUpdate(7, model.AuthorPatch{Name: &name, BornDate: &born})

	assert.Contains(t, query, "SET name = $1, born_date = $2, updated_at = NOW() WHERE id = $3")
	assert.NotContains(t, query, "biography =")
	assert.Equal(t, []any{name, born, int64(7)}, args)
}

func TestAuthorPredicates(t *testing.T) {
	name, empty, year := "ada", "", 1815

	assert.Empty(t, authorPredicates(model.AuthorFilter{}))
	assert.Empty(t, authorPredicates(model.AuthorFilter{Name: &empty}))

	b := sqlfilter.New(authorPredicates(model.AuthorFilter{Name: &name, BirthYear: &year})...)
	assert.Equal(t, " WHERE name ILIKE $1 AND born_date >= $2 AND born_date < $3", b.Where())
}
