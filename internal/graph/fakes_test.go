package graph

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authormodel "bookcatalog-backend/internal/domains/author/model"
	bookmodel "bookcatalog-backend/internal/domains/book/model"
	reviewmodel "bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/pagination"
)

// memStore backs the fake services and the loader sources at once
type memStore struct {
	mu      sync.Mutex
	authors map[int64]authormodel.Author
	books   map[int64]bookmodel.Book
	reviews []reviewmodel.Review
	lastAID int64
	lastBID int64

	batchCalls map[string]int
	failBooks  error
}

func newMemStore() *memStore {
	return &memStore{
		authors:    map[int64]authormodel.Author{},
		books:      map[int64]bookmodel.Book{},
		batchCalls: map[string]int{},
	}
}

func (s *memStore) count(name string) {
	s.batchCalls[name]++
}

func (s *memStore) calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchCalls[name]
}

// ---- loader sources ----

func (s *memStore) GetByIDs(_ context.Context, ids []int64) ([]authormodel.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("authors")
	var out []authormodel.Author
	for _, id := range ids {
		if a, ok := s.authors[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) ListByAuthorIDs(_ context.Context, ids []int64) ([]bookmodel.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("books")
	want := set(ids)
	var out []bookmodel.Book
	for _, b := range s.sortedBooks() {
		if want[b.AuthorID] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) CountByAuthorIDs(_ context.Context, ids []int64) (map[int64]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("book_counts")
	want := set(ids)
	out := map[int64]int64{}
	for _, b := range s.books {
		if want[b.AuthorID] {
			out[b.AuthorID]++
		}
	}
	return out, nil
}

func (s *memStore) ListByBookIDs(_ context.Context, ids []int64) ([]reviewmodel.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("reviews")
	want := set(ids)
	var out []reviewmodel.Review
	for _, r := range s.reviews {
		if want[r.BookID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) AverageRatingByBookIDs(_ context.Context, ids []int64) (map[int64]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("ratings")
	want := set(ids)
	sum, n := map[int64]int{}, map[int64]int{}
	for _, r := range s.reviews {
		if want[r.BookID] {
			sum[r.BookID] += r.Rating
			n[r.BookID]++
		}
	}
	out := map[int64]float64{}
	for id, total := range sum {
		out[id] = float64(total) / float64(n[id])
	}
	return out, nil
}

func set(ids []int64) map[int64]bool {
	m := make(map[int64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func (s *memStore) sortedBooks() []bookmodel.Book {
	out := make([]bookmodel.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) sortedAuthors() []authormodel.Author {
	out := make([]authormodel.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// sliceSource paginates an already filtered, id-ordered slice
func sliceSource[T any](rows []T, idOf func(T) int64) pagination.SourceFuncs[T] {
	return pagination.SourceFuncs[T]{
		FetchFn: func(_ context.Context, w pagination.Window) ([]T, error) {
			var out []T
			for _, r := range rows {
				id := idOf(r)
				if w.After != nil && id <= *w.After {
					continue
				}
				if w.Before != nil && id >= *w.Before {
					continue
				}
				if len(out) == w.Limit {
					break
				}
				out = append(out, r)
			}
			return out, nil
		},
		CountFn: func(context.Context) (int64, error) { return int64(len(rows)), nil },
		ExistsBeforeFn: func(_ context.Context, id int64) (bool, error) {
			return len(rows) > 0 && idOf(rows[0]) < id, nil
		},
	}
}

// ---- author service ----

type fakeAuthorService struct{ s *memStore }

func (f fakeAuthorService) Create(_ context.Context, in authormodel.CreateAuthorInput) (*authormodel.Author, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	a, err := in.ToAuthor()
	if err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.lastAID++
	a.ID = f.s.lastAID
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	f.s.authors[a.ID] = *a
	return a, nil
}

func (f fakeAuthorService) Update(_ context.Context, id int64, in authormodel.UpdateAuthorInput) (*authormodel.Author, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.authors[id]
	if !ok {
		return nil, apperror.NotFound("author")
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	f.s.authors[id] = a
	return &a, nil
}

func (f fakeAuthorService) Delete(_ context.Context, id int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.books {
		if b.AuthorID == id {
			return false, apperror.Conflict("author still has books", nil)
		}
	}
	_, ok := f.s.authors[id]
	delete(f.s.authors, id)
	return ok, nil
}

func (f fakeAuthorService) GetByID(_ context.Context, id int64) (*authormodel.Author, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.authors[id]
	if !ok {
		return nil, apperror.NotFound("author")
	}
	return &a, nil
}

func (f fakeAuthorService) List(ctx context.Context, filter authormodel.AuthorFilter, w pagination.Window) (*pagination.Connection[authormodel.Author], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	var rows []authormodel.Author
	for _, a := range f.s.sortedAuthors() {
		if filter.Name != nil && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		rows = append(rows, a)
	}
	f.s.mu.Unlock()
	return pagination.Paginate[authormodel.Author](ctx, sliceSource(rows, func(a authormodel.Author) int64 { return a.ID }), w,
		func(a authormodel.Author) int64 { return a.ID })
}

func (f fakeAuthorService) NamesAndIDs(context.Context) ([]authormodel.AuthorNameID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []authormodel.AuthorNameID{}
	for _, a := range f.s.sortedAuthors() {
		out = append(out, authormodel.AuthorNameID{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// ---- book service ----

type fakeBookService struct{ s *memStore }

func (f fakeBookService) Create(_ context.Context, in bookmodel.CreateBookInput) (*bookmodel.Book, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := in.ToBook()
	if err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.authors[b.AuthorID]; !ok {
		return nil, apperror.Conflict("referenced author does not exist", nil)
	}
	f.s.lastBID++
	b.ID = f.s.lastBID
	b.CreatedAt, b.UpdatedAt = time.Now(), time.Now()
	f.s.books[b.ID] = *b
	return b, nil
}

func (f fakeBookService) Update(_ context.Context, id int64, in bookmodel.UpdateBookInput) (*bookmodel.Book, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.books[id]
	if !ok {
		return nil, apperror.NotFound("book")
	}
	if in.Title != nil {
		b.Title = *in.Title
	}
	f.s.books[id] = b
	return &b, nil
}

func (f fakeBookService) Delete(_ context.Context, id int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.books[id]
	delete(f.s.books, id)
	return ok, nil
}

func (f fakeBookService) GetByID(_ context.Context, id int64) (*bookmodel.Book, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failBooks != nil {
		return nil, f.s.failBooks
	}
	b, ok := f.s.books[id]
	if !ok {
		return nil, apperror.NotFound("book")
	}
	return &b, nil
}

func (f fakeBookService) List(ctx context.Context, filter bookmodel.BookFilter, w pagination.Window) (*pagination.Connection[bookmodel.Book], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	var rows []bookmodel.Book
	for _, b := range f.s.sortedBooks() {
		if filter.PublishedYear != nil && b.PublishedDate.Year() != *filter.PublishedYear {
			continue
		}
		if filter.Title != nil && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(*filter.Title)) {
			continue
		}
		rows = append(rows, b)
	}
	f.s.mu.Unlock()
	return pagination.Paginate[bookmodel.Book](ctx, sliceSource(rows, func(b bookmodel.Book) int64 { return b.ID }), w,
		func(b bookmodel.Book) int64 { return b.ID })
}

func (f fakeBookService) ExportXLSX(context.Context, bookmodel.BookFilter, int) (*excelize.File, int, error) {
	return nil, 0, errors.New("not used")
}

// ---- review service ----

type fakeReviewService struct{ s *memStore }

func (f fakeReviewService) Create(_ context.Context, in reviewmodel.CreateReviewInput) (*reviewmodel.Review, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r := in.ToReview(time.Now())
	r.ID = primitive.NewObjectID()
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.reviews = append(f.s.reviews, *r)
	return r, nil
}

func (f fakeReviewService) Update(_ context.Context, id string, in reviewmodel.UpdateReviewInput) (*reviewmodel.Review, error) {
	oid, err := reviewmodel.ParseID(id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range f.s.reviews {
		if f.s.reviews[i].ID == oid {
			if in.Rating != nil {
				f.s.reviews[i].Rating = *in.Rating
			}
			if in.Comment != nil {
				f.s.reviews[i].Comment = in.Comment
			}
			r := f.s.reviews[i]
			return &r, nil
		}
	}
	return nil, apperror.NotFound("review")
}

func (f fakeReviewService) Delete(_ context.Context, id string) (bool, error) {
	oid, err := reviewmodel.ParseID(id)
	if err != nil {
		return false, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range f.s.reviews {
		if f.s.reviews[i].ID == oid {
			f.s.reviews = append(f.s.reviews[:i], f.s.reviews[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f fakeReviewService) GetByID(ctx context.Context, id string) (*reviewmodel.Review, error) {
	return nil, apperror.NotFound("review")
}

func (f fakeReviewService) ListByBook(ctx context.Context, bookID int64) ([]reviewmodel.Review, error) {
	return f.s.ListByBookIDs(ctx, []int64{bookID})
}
