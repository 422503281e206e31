package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error dùng cùng bộ code với GraphQL extensions.code
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{Success: false, Error: &Error{Code: code, Message: message}})
}

// FromError maps the error taxonomy to status and code. Internal errors are masked and
// attached to the gin context so the error-reporting middleware can pick them up.
func FromError(c *gin.Context, err error) {
	if apperror.IsReportable(err) {
		_ = c.Error(err)
	}
	ErrorResponse(c, apperror.HTTPStatus(err), apperror.CodeOf(err), apperror.PublicMessage(err))
}

// REST endpoints dùng chung envelope này; GraphQL trả lỗi theo format riêng
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, apperror.CodeBadUserInput, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, apperror.CodeNotFound, message)
}

