package graph

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"

	authormodel "bookcatalog-backend/internal/domains/author/model"
	bookmodel "bookcatalog-backend/internal/domains/book/model"
	reviewmodel "bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/graph/loader"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/pagination"
	"bookcatalog-backend/internal/shared/utils"
)

// thunk là dạng graphql-go nhận để resolve field song song (dataloader batch)
type thunk = func() (interface{}, error)

type types struct {
	author       *graphql.Object
	authorNameID *graphql.Object
	book         *graphql.Object
	review       *graphql.Object
	pageInfo     *graphql.Object
	bookConn     *graphql.Object
	authorConn   *graphql.Object
}

// edgeValue/connectionValue là dạng đã bỏ generic của pagination.Connection cho graphql-go
type edgeValue struct {
	Node   interface{}
	Cursor string
}

type connectionValue struct {
	Edges      []edgeValue
	PageInfo   pagination.PageInfo
	TotalCount int64
}

func toConnection[T any](c *pagination.Connection[T]) *connectionValue {
	out := &connectionValue{
		Edges:      make([]edgeValue, len(c.Edges)),
		PageInfo:   c.PageInfo,
		TotalCount: c.TotalCount,
	}
	for i := range c.Edges {
		node := c.Edges[i].Node
		out.Edges[i] = edgeValue{Node: &node, Cursor: c.Edges[i].Cursor}
	}
	return out
}

func loaders(ctx context.Context) (*loader.Loaders, error) {
	l := loader.For(ctx)
	if l == nil {
		return nil, apperror.Internal("loaders missing from request context", nil)
	}
	return l, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func newTypes() *types {
	t := &types{}

	t.pageInfo = graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"hasNextPage":     pageInfoField(graphql.NewNonNull(graphql.Boolean), func(pi pagination.PageInfo) interface{} { return pi.HasNextPage }),
			"hasPreviousPage": pageInfoField(graphql.NewNonNull(graphql.Boolean), func(pi pagination.PageInfo) interface{} { return pi.HasPreviousPage }),
			"startCursor":     pageInfoField(graphql.String, func(pi pagination.PageInfo) interface{} { return deref(pi.StartCursor) }),
			"endCursor":       pageInfoField(graphql.String, func(pi pagination.PageInfo) interface{} { return deref(pi.EndCursor) }),
			// tên cũ mà frontend đang dùng
			"nextCursor":     pageInfoField(graphql.String, func(pi pagination.PageInfo) interface{} { return deref(pi.EndCursor) }),
			"previousCursor": pageInfoField(graphql.String, func(pi pagination.PageInfo) interface{} { return deref(pi.StartCursor) }),
		},
	})

	t.authorNameID = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthorNameId",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatID(p.Source.(authormodel.AuthorNameID).ID), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(authormodel.AuthorNameID).Name, nil
				},
			},
		},
	})

	t.review = graphql.NewObject(graphql.ObjectConfig{
		Name:   "Review",
		Fields: reviewFields(),
	})

	// Author và Book tham chiếu lẫn nhau nên fields dùng thunk
	t.author = graphql.NewObject(graphql.ObjectConfig{
		Name:   "Author",
		Fields: graphql.FieldsThunk(func() graphql.Fields { return t.authorFields() }),
	})
	t.book = graphql.NewObject(graphql.ObjectConfig{
		Name:   "Book",
		Fields: graphql.FieldsThunk(func() graphql.Fields { return t.bookFields() }),
	})

	t.bookConn = t.connectionType("Book", t.book)
	t.authorConn = t.connectionType("Author", t.author)
	return t
}

func pageInfoField(typ graphql.Output, get func(pagination.PageInfo) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(pagination.PageInfo)), nil
		},
	}
}

func (t *types) connectionType(name string, node *graphql.Object) *graphql.Object {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"node": &graphql.Field{
				Type: graphql.NewNonNull(node),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(edgeValue).Node, nil
				},
			},
			"cursor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(edgeValue).Cursor, nil
				},
			},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"edges": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edge))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*connectionValue).Edges, nil
				},
			},
			"pageInfo": &graphql.Field{
				Type: graphql.NewNonNull(t.pageInfo),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*connectionValue).PageInfo, nil
				},
			},
			"totalCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*connectionValue).TotalCount), nil
				},
			},
		},
	})
}

// ========================================
// AUTHOR
// ========================================

func authorField(typ graphql.Output, get func(*authormodel.Author) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(*authormodel.Author)), nil
		},
	}
}

func (t *types) authorFields() graphql.Fields {
	return graphql.Fields{
		"id":        authorField(graphql.NewNonNull(graphql.ID), func(a *authormodel.Author) interface{} { return formatID(a.ID) }),
		"name":      authorField(graphql.NewNonNull(graphql.String), func(a *authormodel.Author) interface{} { return a.Name }),
		"biography": authorField(graphql.String, func(a *authormodel.Author) interface{} { return deref(a.Biography) }),
		"born_date": authorField(graphql.String, func(a *authormodel.Author) interface{} { return deref(utils.FormatDate(a.BornDate)) }),
		"photo_url": authorField(graphql.String, func(a *authormodel.Author) interface{} { return deref(a.PhotoURL) }),
		"createdAt": authorField(graphql.NewNonNull(graphql.String), func(a *authormodel.Author) interface{} { return formatTime(a.CreatedAt) }),
		"updatedAt": authorField(graphql.NewNonNull(graphql.String), func(a *authormodel.Author) interface{} { return formatTime(a.UpdatedAt) }),

		"books": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.book))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				l, err := loaders(p.Context)
				if err != nil {
					return nil, err
				}
				load := l.BooksByAuthorID.Load(p.Context, p.Source.(*authormodel.Author).ID)
				return thunk(func() (interface{}, error) {
					books, err := load()
					if err != nil {
						return nil, err
					}
					out := make([]*bookmodel.Book, len(books))
					for i := range books {
						out[i] = &books[i]
					}
					return out, nil
				}), nil
			},
		},
		"totalBooks": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				l, err := loaders(p.Context)
				if err != nil {
					return nil, err
				}
				load := l.BookCountByAuthorID.Load(p.Context, p.Source.(*authormodel.Author).ID)
				return thunk(func() (interface{}, error) {
					n, err := load()
					if err != nil {
						return nil, err
					}
					return int(n), nil
				}), nil
			},
		},
	}
}

// ========================================
// BOOK
// ========================================

func bookField(typ graphql.Output, get func(*bookmodel.Book) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(*bookmodel.Book)), nil
		},
	}
}

func (t *types) bookFields() graphql.Fields {
	return graphql.Fields{
		"id":          bookField(graphql.NewNonNull(graphql.ID), func(b *bookmodel.Book) interface{} { return formatID(b.ID) }),
		"title":       bookField(graphql.NewNonNull(graphql.String), func(b *bookmodel.Book) interface{} { return b.Title }),
		"description": bookField(graphql.String, func(b *bookmodel.Book) interface{} { return deref(b.Description) }),
		"published_date": bookField(graphql.NewNonNull(graphql.String), func(b *bookmodel.Book) interface{} {
			return b.PublishedDate.Format(utils.DateLayout)
		}),
		"author_id": bookField(graphql.NewNonNull(graphql.ID), func(b *bookmodel.Book) interface{} { return formatID(b.AuthorID) }),
		"cover_url": bookField(graphql.String, func(b *bookmodel.Book) interface{} { return deref(b.CoverURL) }),
		"createdAt": bookField(graphql.NewNonNull(graphql.String), func(b *bookmodel.Book) interface{} { return formatTime(b.CreatedAt) }),
		"updatedAt": bookField(graphql.NewNonNull(graphql.String), func(b *bookmodel.Book) interface{} { return formatTime(b.UpdatedAt) }),

		"author": &graphql.Field{
			Type: graphql.NewNonNull(t.author),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				l, err := loaders(p.Context)
				if err != nil {
					return nil, err
				}
				b := p.Source.(*bookmodel.Book)
				load := l.AuthorByID.Load(p.Context, b.AuthorID)
				return thunk(func() (interface{}, error) {
					a, err := load()
					if err != nil {
						return nil, err
					}
					if a == nil {
						// FK đảm bảo không xảy ra; nếu có là dữ liệu hỏng
						return nil, apperror.Internal(fmt.Sprintf("author %d of book %d not found", b.AuthorID, b.ID), nil)
					}
					return a, nil
				}), nil
			},
		},
		"reviews": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.review))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				l, err := loaders(p.Context)
				if err != nil {
					return nil, err
				}
				load := l.ReviewsByBookID.Load(p.Context, p.Source.(*bookmodel.Book).ID)
				return thunk(func() (interface{}, error) {
					reviews, err := load()
					if err != nil {
						return nil, err
					}
					return reviewPointers(reviews), nil
				}), nil
			},
		},
		"average_rating": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				l, err := loaders(p.Context)
				if err != nil {
					return nil, err
				}
				load := l.AverageRatingByBookID.Load(p.Context, p.Source.(*bookmodel.Book).ID)
				return thunk(func() (interface{}, error) {
					avg, err := load()
					if err != nil || avg == nil {
						return nil, err
					}
					return *avg, nil
				}), nil
			},
		},
	}
}

// ========================================
// REVIEW
// ========================================

func reviewField(typ graphql.Output, get func(*reviewmodel.Review) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(*reviewmodel.Review)), nil
		},
	}
}

func reviewFields() graphql.Fields {
	return graphql.Fields{
		"id":            reviewField(graphql.NewNonNull(graphql.ID), func(r *reviewmodel.Review) interface{} { return r.ID.Hex() }),
		"book_id":       reviewField(graphql.NewNonNull(graphql.ID), func(r *reviewmodel.Review) interface{} { return formatID(r.BookID) }),
		"rating":        reviewField(graphql.NewNonNull(graphql.Int), func(r *reviewmodel.Review) interface{} { return r.Rating }),
		"comment":       reviewField(graphql.String, func(r *reviewmodel.Review) interface{} { return deref(r.Comment) }),
		"helpful_count": reviewField(graphql.NewNonNull(graphql.Int), func(r *reviewmodel.Review) interface{} { return r.HelpfulCount }),
		"createdAt":     reviewField(graphql.NewNonNull(graphql.String), func(r *reviewmodel.Review) interface{} { return formatTime(r.CreatedAt) }),
		"updatedAt":     reviewField(graphql.NewNonNull(graphql.String), func(r *reviewmodel.Review) interface{} { return formatTime(r.UpdatedAt) }),
	}
}

func reviewPointers(reviews []reviewmodel.Review) []*reviewmodel.Review {
	out := make([]*reviewmodel.Review, len(reviews))
	for i := range reviews {
		out[i] = &reviews[i]
	}
	return out
}
