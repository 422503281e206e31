package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter là phần của book service mà handler cần
type Exporter interface {
	ExportXLSX(ctx context.Context, filter model.BookFilter, limit int) (*excelize.File, int, error)
}

type ExportHandler struct {
	service Exporter
}

func NewExportHandler(service Exporter) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// GET /api/v1/books/export?title=&author_name=&published_year=&limit=
func (h *ExportHandler) Export(c *gin.Context) {
	filter, limit, ok := parseExportQuery(c)
	if !ok {
		return
	}

	f, n, err := h.service.ExportXLSX(c.Request.Context(), filter, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		// header đã gửi, chỉ còn log được
		log.Error().Err(err).Msg("Failed to stream xlsx export")
		return
	}
	log.Info().Int("rows", n).Msg("Books exported")
}

func parseExportQuery(c *gin.Context) (model.BookFilter, int, bool) {
	var filter model.BookFilter
	if v := c.Query("title"); v != "" {
		filter.Title = &v
	}
	if v := c.Query("author_name"); v != "" {
		filter.AuthorName = &v
	}
	if v := c.Query("published_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "published_year must be an integer")
			return filter, 0, false
		}
		filter.PublishedYear = &year
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(c, "limit must be a non-negative integer")
			return filter, 0, false
		}
		limit = n
	}
	return filter, limit, true
}
