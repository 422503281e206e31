package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/errtrack"
)

// ErrorReport gửi các lỗi hạ tầng mà handler đã gắn qua c.Error lên error tracker
func ErrorReport(reporter errtrack.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			log.Error().
				Err(ginErr.Err).
				Str("request_id", c.GetString(RequestIDKey)).
				Str("route", c.FullPath()).
				Msg("Request failed")

			reporter.Capture(c.Request.Context(), ginErr.Err, map[string]string{
				"request_id": c.GetString(RequestIDKey),
				"route":      c.FullPath(),
			})
		}
	}
}
