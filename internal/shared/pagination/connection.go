package pagination

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"bookcatalog-backend/internal/shared/apperror"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 10
)

// Window là vùng id được yêu cầu: (After, Before) exclusive, tối đa Limit rows
type Window struct {
	After  *int64
	Before *int64
	Limit  int
}

// NewWindow decodes the client arguments. first is clamped server-side regardless of
// what the client asks for.
func NewWindow(first *int, after, before *string) (Window, error) {
	w := Window{Limit: DefaultPageSize}

	if first != nil {
		if *first < 0 {
			return Window{}, apperror.Validation("invalid first", errors.New("first must not be negative"))
		}
		w.Limit = min(*first, MaxPageSize)
	}

	if after != nil && *after != "" {
		id, err := DecodeCursor(*after)
		if err != nil {
			return Window{}, err
		}
		w.After = &id
	}

	if before != nil && *before != "" {
		id, err := DecodeCursor(*before)
		if err != nil {
			return Window{}, err
		}
		w.Before = &id
	}

	return w, nil
}

type PageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     *string
	EndCursor       *string
}

type Edge[T any] struct {
	Node   T
	Cursor string
}

type Connection[T any] struct {
	Edges      []Edge[T]
	PageInfo   PageInfo
	TotalCount int64
}

// Nodes returns the page entities in edge order
func (c *Connection[T]) Nodes() []T {
	nodes := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// Source is one filtered, ascending-by-id result set.
type Source[T any] interface {
	// Fetch returns at most w.Limit rows inside the window, ordered by id ASC
	Fetch(ctx context.Context, w Window) ([]T, error)
	// Count ignores the window: total rows matching the filter
	Count(ctx context.Context) (int64, error)
	// ExistsBefore reports whether a matching row has id < id
	ExistsBefore(ctx context.Context, id int64) (bool, error)
}

// SourceFuncs adapts closures to Source
type SourceFuncs[T any] struct {
	FetchFn        func(ctx context.Context, w Window) ([]T, error)
	CountFn        func(ctx context.Context) (int64, error)
	ExistsBeforeFn func(ctx context.Context, id int64) (bool, error)
}

func (s SourceFuncs[T]) Fetch(ctx context.Context, w Window) ([]T, error) {
	return s.FetchFn(ctx, w)
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int64, error) {
	return s.CountFn(ctx)
}

func (s SourceFuncs[T]) ExistsBefore(ctx context.Context, id int64) (bool, error) {
	return s.ExistsBeforeFn(ctx, id)
}

// Paginate builds one connection page.
//
// Rows are over-fetched by one: if the store returns more than w.Limit rows a next page
// exists and the extra row is dropped. The page query and the count query run
// concurrently on separate pool connections.
func Paginate[T any](ctx context.Context, src Source[T], w Window, idOf func(T) int64) (*Connection[T], error) {
	fetch := w
	fetch.Limit = w.Limit + 1

	var (
		rows  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = src.Fetch(gctx, fetch)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = src.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page, hasNext := Trim(rows, w.Limit)

	conn := &Connection[T]{
		Edges:      make([]Edge[T], len(page)),
		TotalCount: total,
	}
	for i, row := range page {
		conn.Edges[i] = Edge[T]{Node: row, Cursor: EncodeCursor(idOf(row))}
	}

	conn.PageInfo.HasNextPage = hasNext
	if len(conn.Edges) > 0 {
		start := conn.Edges[0].Cursor
		end := conn.Edges[len(conn.Edges)-1].Cursor
		conn.PageInfo.StartCursor = &start
		conn.PageInfo.EndCursor = &end

		hasPrev, err := src.ExistsBefore(ctx, idOf(page[0]))
		if err != nil {
			return nil, err
		}
		conn.PageInfo.HasPreviousPage = hasPrev
	} else {
		// empty page: không có mốc để kiểm tra, fallback theo cursor
		conn.PageInfo.HasPreviousPage = w.After != nil
	}

	return conn, nil
}

// Trim drops the over-fetched row
func Trim[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
