package graph

import (
	"github.com/graphql-go/graphql"

	authormodel "bookcatalog-backend/internal/domains/author/model"
	bookmodel "bookcatalog-backend/internal/domains/book/model"
)

var bookInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "BookInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"published_date": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"author_id":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"cover_url":      &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var bookUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "BookUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"published_date": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"author_id":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"cover_url":      &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var authorInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AuthorInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"biography": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"born_date": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"photo_url": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var authorUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AuthorUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"biography": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"born_date": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"photo_url": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var bookFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "BookFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"author_name":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"published_year": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var authorFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AuthorFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"birth_year": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

// ========================================
// DECODERS
// ========================================

func decodeCreateBook(in map[string]interface{}) (bookmodel.CreateBookInput, error) {
	authorID, err := parseID(in["author_id"], "author_id")
	if err != nil {
		return bookmodel.CreateBookInput{}, err
	}
	return bookmodel.CreateBookInput{
		Title:         stringArg(in, "title"),
		Description:   optString(in, "description"),
		PublishedDate: stringArg(in, "published_date"),
		AuthorID:      authorID,
		CoverURL:      optString(in, "cover_url"),
	}, nil
}

func decodeUpdateBook(in map[string]interface{}) (bookmodel.UpdateBookInput, error) {
	out := bookmodel.UpdateBookInput{
		Title:         optString(in, "title"),
		Description:   optString(in, "description"),
		PublishedDate: optString(in, "published_date"),
		CoverURL:      optString(in, "cover_url"),
	}
	if v, ok := in["author_id"]; ok && v != nil {
		id, err := parseID(v, "author_id")
		if err != nil {
			return out, err
		}
		out.AuthorID = &id
	}
	return out, nil
}

func decodeCreateAuthor(in map[string]interface{}) authormodel.CreateAuthorInput {
	return authormodel.CreateAuthorInput{
		Name:      stringArg(in, "name"),
		Biography: optString(in, "biography"),
		BornDate:  optString(in, "born_date"),
		PhotoURL:  optString(in, "photo_url"),
	}
}

func decodeUpdateAuthor(in map[string]interface{}) authormodel.UpdateAuthorInput {
	return authormodel.UpdateAuthorInput{
		Name:      optString(in, "name"),
		Biography: optString(in, "biography"),
		BornDate:  optString(in, "born_date"),
		PhotoURL:  optString(in, "photo_url"),
	}
}

func decodeBookFilter(in map[string]interface{}) bookmodel.BookFilter {
	return bookmodel.BookFilter{
		Title:         optString(in, "title"),
		AuthorName:    optString(in, "author_name"),
		PublishedYear: optInt(in, "published_year"),
	}
}

func decodeAuthorFilter(in map[string]interface{}) authormodel.AuthorFilter {
	return authormodel.AuthorFilter{
		Name:      optString(in, "name"),
		BirthYear: optInt(in, "birth_year"),
	}
}
