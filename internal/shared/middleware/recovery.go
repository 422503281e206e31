package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/errtrack"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/response"
)

func Recovery(reporter errtrack.Reporter) gin.HandlerFunc {
	if reporter == nil {
		reporter = errtrack.Noop{}
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", rec).
					Msg("Panic recovered")

				reporter.Capture(c.Request.Context(), fmt.Errorf("panic: %v", rec), map[string]string{
					"request_id": c.GetString(RequestIDKey),
					"route":      c.FullPath(),
				})

				response.ErrorResponse(c, http.StatusInternalServerError, apperror.CodeInternal, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
