// Package sqlfilter builds parameterized WHERE clauses from a closed set of predicates.
// Values always travel as bind arguments; only column names from this package reach SQL text.
package sqlfilter

import (
	"fmt"
	"strings"
	"time"
)

// Column is a whitelisted column reference
type Column struct {
	name string
}

func (c Column) String() string { return c.name }

var (
	ID            = Column{"id"}
	Title         = Column{"title"}
	Name          = Column{"name"}
	PublishedDate = Column{"published_date"}
	BornDate      = Column{"born_date"}
)

// Predicate is implemented only by the constructors below
type Predicate interface {
	apply(b *Builder) string
}

type substring struct {
	col   Column
	value string
}

func (p substring) apply(b *Builder) string {
	return fmt.Sprintf("%s ILIKE %s", p.col, b.Arg("%"+EscapeLike(p.value)+"%"))
}

type yearRange struct {
	col  Column
	year int
}

// [y-01-01, (y+1)-01-01) keeps the predicate index-friendly
func (p yearRange) apply(b *Builder) string {
	from := time.Date(p.year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	return fmt.Sprintf("%s >= %s AND %s < %s", p.col, b.Arg(from), p.col, b.Arg(to))
}

type idBound struct {
	op string
	id int64
}

func (p idBound) apply(b *Builder) string {
	return fmt.Sprintf("id %s %s", p.op, b.Arg(p.id))
}

type authorName struct {
	value string
}

func (p authorName) apply(b *Builder) string {
	return fmt.Sprintf("author_id IN (SELECT id FROM authors WHERE name ILIKE %s)", b.Arg("%"+EscapeLike(p.value)+"%"))
}

// Substring: case-insensitive containment, LIKE wildcards in value are literal
func Substring(col Column, value string) Predicate { return substring{col: col, value: value} }

// YearRange matches dates falling inside the calendar year
func YearRange(col Column, year int) Predicate { return yearRange{col: col, year: year} }

func IDAfter(id int64) Predicate  { return idBound{op: ">", id: id} }
func IDBefore(id int64) Predicate { return idBound{op: "<", id: id} }

// IDWindow converts optional cursor bounds to predicates; both bounds intersect
func IDWindow(after, before *int64) []Predicate {
	var preds []Predicate
	if after != nil {
		preds = append(preds, IDAfter(*after))
	}
	if before != nil {
		preds = append(preds, IDBefore(*before))
	}
	return preds
}

// AuthorNameSubstring filters books by their author's name
func AuthorNameSubstring(value string) Predicate { return authorName{value: value} }

// EscapeLike escapes the LIKE metacharacters using the default backslash escape
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ========================================
// BUILDER
// ========================================

// Builder accumulates clauses and their positional arguments.
// The zero value is ready to use.
type Builder struct {
	clauses []string
	args    []any
}

func New(preds ...Predicate) *Builder {
	b := &Builder{}
	for _, p := range preds {
		b.Add(p)
	}
	return b
}

func (b *Builder) Add(p Predicate) *Builder {
	if p == nil {
		return b
	}
	b.clauses = append(b.clauses, p.apply(b))
	return b
}

// Arg registers a bind argument and returns its placeholder
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Where renders " WHERE ..." or an empty string when no predicate was added
func (b *Builder) Where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

func (b *Builder) Args() []any {
	return b.args
}

// Clone copies the builder so a shared filter can be extended per query
func (b *Builder) Clone() *Builder {
	return &Builder{
		clauses: append([]string(nil), b.clauses...),
		args:    append([]any(nil), b.args...),
	}
}
