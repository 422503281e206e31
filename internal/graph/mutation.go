package graph

import (
	"strings"

	"github.com/graphql-go/graphql"

	reviewmodel "bookcatalog-backend/internal/domains/review/model"
)

func (r *Resolver) mutationType(t *types) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createBook": &graphql.Field{
				Type: graphql.NewNonNull(t.book),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookInput)},
				},
				Resolve: r.createBook,
			},
			"updateBook": &graphql.Field{
				Type: graphql.NewNonNull(t.book),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookUpdateInput)},
				},
				Resolve: r.updateBook,
			},
			"deleteBook": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArg(),
				Resolve: r.deleteBook,
			},
			"createAuthor": &graphql.Field{
				Type: graphql.NewNonNull(t.author),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(authorInput)},
				},
				Resolve: r.createAuthor,
			},
			"updateAuthor": &graphql.Field{
				Type: graphql.NewNonNull(t.author),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(authorUpdateInput)},
				},
				Resolve: r.updateAuthor,
			},
			"deleteAuthor": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArg(),
				Resolve: r.deleteAuthor,
			},
			"createReview": &graphql.Field{
				Type: graphql.NewNonNull(t.review),
				Args: graphql.FieldConfigArgument{
					"book_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"rating":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"comment": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.createReview,
			},
			"updateReview": &graphql.Field{
				Type: graphql.NewNonNull(t.review),
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"rating":  &graphql.ArgumentConfig{Type: graphql.Int},
					"comment": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.updateReview,
			},
			"deleteReview": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArg(),
				Resolve: r.deleteReview,
			},
		},
	})
}

// ========================================
// BOOK
// ========================================

func (r *Resolver) createBook(p graphql.ResolveParams) (interface{}, error) {
	in, err := decodeCreateBook(inputMap(p.Args, "input"))
	if err != nil {
		return nil, err
	}
	return r.Books.Create(p.Context, in)
}

func (r *Resolver) updateBook(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"], "id")
	if err != nil {
		return nil, err
	}
	in, err := decodeUpdateBook(inputMap(p.Args, "input"))
	if err != nil {
		return nil, err
	}
	return r.Books.Update(p.Context, id, in)
}

func (r *Resolver) deleteBook(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"], "id")
	if err != nil {
		return nil, err
	}
	return r.Books.Delete(p.Context, id)
}

// ========================================
// AUTHOR
// ========================================

func (r *Resolver) createAuthor(p graphql.ResolveParams) (interface{}, error) {
	return r.Authors.Create(p.Context, decodeCreateAuthor(inputMap(p.Args, "input")))
}

func (r *Resolver) updateAuthor(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"], "id")
	if err != nil {
		return nil, err
	}
	return r.Authors.Update(p.Context, id, decodeUpdateAuthor(inputMap(p.Args, "input")))
}

func (r *Resolver) deleteAuthor(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"], "id")
	if err != nil {
		return nil, err
	}
	return r.Authors.Delete(p.Context, id)
}

// ========================================
// REVIEW
// ========================================

func (r *Resolver) createReview(p graphql.ResolveParams) (interface{}, error) {
	bookID, err := parseID(p.Args["book_id"], "book_id")
	if err != nil {
		return nil, err
	}
	rating, _ := p.Args["rating"].(int)
	return r.Reviews.Create(p.Context, reviewmodel.CreateReviewInput{
		BookID:  bookID,
		Rating:  rating,
		Comment: optString(p.Args, "comment"),
	})
}

func (r *Resolver) updateReview(p graphql.ResolveParams) (interface{}, error) {
	return r.Reviews.Update(p.Context, reviewID(p.Args), reviewmodel.UpdateReviewInput{
		Rating:  optInt(p.Args, "rating"),
		Comment: optString(p.Args, "comment"),
	})
}

func (r *Resolver) deleteReview(p graphql.ResolveParams) (interface{}, error) {
	return r.Reviews.Delete(p.Context, reviewID(p.Args))
}

func reviewID(args map[string]interface{}) string {
	return strings.TrimSpace(stringArg(args, "id"))
}
