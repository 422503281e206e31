// Package graph exposes the catalogue over a single GraphQL schema.
package graph

import (
	authorservice "bookcatalog-backend/internal/domains/author/service"
	bookservice "bookcatalog-backend/internal/domains/book/service"
	reviewservice "bookcatalog-backend/internal/domains/review/service"
)

// Resolver gom các service mà query/mutation cần. Nested fields đi qua loader.For(ctx).
type Resolver struct {
	Authors authorservice.ServiceInterface
	Books   bookservice.ServiceInterface
	Reviews reviewservice.ServiceInterface
}

func NewResolver(
	authors authorservice.ServiceInterface,
	books bookservice.ServiceInterface,
	reviews reviewservice.ServiceInterface,
) *Resolver {
	return &Resolver{Authors: authors, Books: books, Reviews: reviews}
}
