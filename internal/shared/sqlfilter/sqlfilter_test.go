package sqlfilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `snake\_case`, EscapeLike("snake_case"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}

func TestEmptyBuilder(t *testing.T) {
	b := New()
	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Args())
}

func TestSubstringAndYearRange(t *testing.T) {
	b := New(Substring(Title, "go_lang"), YearRange(PublishedDate, 2021))

	assert.Equal(t, " WHERE title ILIKE $1 AND published_date >= $2 AND published_date < $3", b.Where())
	assert.Equal(t, []any{
		`%go\_lang%`,
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	}, b.Args())
}

func TestCursorBoundsIntersect(t *testing.T) {
	b := New(IDAfter(3), IDBefore(9))
	assert.Equal(t, " WHERE id > $1 AND id < $2", b.Where())
	assert.Equal(t, []any{int64(3), int64(9)}, b.Args())
}

func TestAuthorNameSubstring(t *testing.T) {
	b := New(AuthorNameSubstring("tolkien"))
	assert.Equal(t, " WHERE author_id IN (SELECT id FROM authors WHERE name ILIKE $1)", b.Where())
	assert.Equal(t, []any{"%tolkien%"}, b.Args())
}

func TestCloneDoesNotLeakIntoBase(t *testing.T) {
	base := New(Substring(Name, "ann"))
	page := base.Clone().Add(IDAfter(5))
	limit := page.Arg(11)

	assert.Equal(t, " WHERE name ILIKE $1", base.Where())
	assert.Len(t, base.Args(), 1)
	assert.Equal(t, " WHERE name ILIKE $1 AND id > $2", page.Where())
	assert.Equal(t, "$3", limit)
	assert.Len(t, page.Args(), 3)
}

func TestNilPredicateIgnored(t *testing.T) {
	b := New(nil, YearRange(BornDate, 1990))
	assert.Equal(t, " WHERE born_date >= $1 AND born_date < $2", b.Where())
}


func TestIDWindow(t *testing.T) {
	after, before := int64(2), int64(8)

	assert.Empty(t, IDWindow(nil, nil))
	assert.Equal(t, " WHERE id > $1", New(IDWindow(&after, nil)...).Where())
	assert.Equal(t, " WHERE id > $1 AND id < $2", New(IDWindow(&after, &before)...).Where())
}
