package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/utils"
)

const (
	DefaultExportLimit = 100
	MaxExportLimit     = 1000
	exportSheet        = "Books"
)

var exportHeaders = []string{
	"ID",
	"Title",
	"Author",
	"Published Date",
	"Average Rating",
	"Description",
	"Cover URL",
	"Created At",
}

// ExportXLSX dựng file Excel cho danh sách book theo filter. Trả về số dòng đã ghi.
func (s *bookService) ExportXLSX(ctx context.Context, filter model.BookFilter, limit int) (*excelize.File, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = DefaultExportLimit
	}
	if limit > MaxExportLimit {
		limit = MaxExportLimit
	}

	rows, err := s.repo.ListForExport(ctx, filter, limit)
	if err != nil {
		return nil, 0, err
	}

	if s.ratings != nil && len(rows) > 0 {
		ids := make([]int64, len(rows))
		for i, r := range rows {
			ids[i] = r.ID
		}
		avg, err := s.ratings.AverageRatingByBookIDs(ctx, ids)
		if err != nil {
			// file vẫn hữu ích khi thiếu cột rating
			log.Warn().Err(err).Msg("Export: failed to load average ratings")
		}
		for i := range rows {
			if v, ok := avg[rows[i].ID]; ok {
				rows[i].AverageRating = &v
			}
		}
	}

	f, err := buildBooksExcelFile(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, len(rows), nil
}

func buildBooksExcelFile(rows []model.ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, r := range rows {
		rowNum := i + 2
		values := []any{
			r.ID,
			r.Title,
			r.AuthorName,
			r.PublishedDate.Format(utils.DateLayout),
			nil,
			nil,
			nil,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if r.AverageRating != nil {
			values[4] = *r.AverageRating
		}
		if r.Description != nil {
			values[5] = *r.Description
		}
		if r.CoverURL != nil {
			values[6] = *r.CoverURL
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
