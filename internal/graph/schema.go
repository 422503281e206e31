package graph

import (
	"github.com/graphql-go/graphql"
)

// NewSchema dựng schema một lần lúc khởi động; types là package-level cho inputs,
// còn objects được tạo mới mỗi lần để test có thể dựng nhiều schema.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := newTypes()
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(t),
		Mutation: r.mutationType(t),
	})
}
