package graph

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/response"
)

type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type Response struct {
	Data   interface{}                `json:"data"`
	Errors []gqlerrors.FormattedError `json:"errors,omitempty"`
}

type Handler struct {
	schema    graphql.Schema
	formatter *ErrorFormatter
}

func NewHandler(schema graphql.Schema, formatter *ErrorFormatter) *Handler {
	return &Handler{schema: schema, formatter: formatter}
}

// Serve godoc
// POST /graphql
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, apperror.CodeBadUserInput, "request body must be a GraphQL JSON payload")
		return
	}
	if req.Query == "" {
		response.ErrorResponse(c, http.StatusBadRequest, apperror.CodeBadUserInput, "query is required")
		return
	}

	ctx := c.Request.Context()
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	// lỗi resolver vẫn trả 200 kèm data một phần, theo quy ước GraphQL over HTTP
	c.JSON(http.StatusOK, Response{
		Data:   result.Data,
		Errors: h.formatter.Format(ctx, result.Errors),
	})
}
