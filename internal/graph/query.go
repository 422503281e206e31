package graph

import (
	"github.com/graphql-go/graphql"

	"bookcatalog-backend/internal/shared/apperror"
)

func connectionArgs(filter *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"first":  &graphql.ArgumentConfig{Type: graphql.Int},
		"after":  &graphql.ArgumentConfig{Type: graphql.String},
		"before": &graphql.ArgumentConfig{Type: graphql.String},
		"filter": &graphql.ArgumentConfig{Type: filter},
	}
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func (r *Resolver) queryType(t *types) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"books": &graphql.Field{
				Type:    graphql.NewNonNull(t.bookConn),
				Args:    connectionArgs(bookFilterInput),
				Resolve: r.resolveBooks,
			},
			"book": &graphql.Field{
				Type:    t.book,
				Args:    idArg(),
				Resolve: r.resolveBook,
			},
			"authors": &graphql.Field{
				Type:    graphql.NewNonNull(t.authorConn),
				Args:    connectionArgs(authorFilterInput),
				Resolve: r.resolveAuthors,
			},
			"author": &graphql.Field{
				Type:    t.author,
				Args:    idArg(),
				Resolve: r.resolveAuthor,
			},
			"authorNameId": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.authorNameID))),
				Resolve: r.resolveAuthorNameID,
			},
			"reviews": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.review))),
				Args: graphql.FieldConfigArgument{
					"book_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveReviews,
			},
		},
	})
}

func (r *Resolver) resolveBooks(p graphql.ResolveParams) (interface{}, error) {
	w, err := windowArgs(p.Args)
	if err != nil {
		return nil, err
	}
	conn, err := r.Books.List(p.Context, decodeBookFilter(inputMap(p.Args, "filter")), w)
	if err != nil {
		return nil, err
	}
	return toConnection(conn), nil
}

// resolveBook: id không tồn tại trả về null, không phải lỗi
func (r *Resolver) resolveBook(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"], "id")
	if err != nil {
		return nil, err
	}
	b, err := r.Books.GetByID(p.Context, id)
	if apperror.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Resolver) resolveAuthors(p graphql.ResolveParams) (interface{}, error) {
	w, err := windowArgs(p.Args)
	if err != nil {
		return nil, err
	}
	conn, err := r.Authors.List(p.Context, decodeAuthorFilter(inputMap(p.Args, "filter")), w)
	if err != nil {
		return nil, err
	}
	return toConnection(conn), nil
}

func (r *Resolver) resolveAuthor(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"], "id")
	if err != nil {
		return nil, err
	}
	a, err := r.Authors.GetByID(p.Context, id)
	if apperror.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Resolver) resolveAuthorNameID(p graphql.ResolveParams) (interface{}, error) {
	return r.Authors.NamesAndIDs(p.Context)
}

func (r *Resolver) resolveReviews(p graphql.ResolveParams) (interface{}, error) {
	bookID, err := parseID(p.Args["book_id"], "book_id")
	if err != nil {
		return nil, err
	}
	reviews, err := r.Reviews.ListByBook(p.Context, bookID)
	if err != nil {
		return nil, err
	}
	return reviewPointers(reviews), nil
}
