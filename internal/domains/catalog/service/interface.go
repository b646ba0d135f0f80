package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"library-catalog/internal/domains/catalog/model"
)

type ServiceInterface interface {
	// Summary serves the cached summary, computing it on a miss.
	Summary(ctx context.Context) (*model.Summary, error)
	// Refresh recomputes the summary and overwrites the cache.
	Refresh(ctx context.Context) (*model.Summary, error)
	// ExportBooks builds a workbook with one row per book.
	ExportBooks(ctx context.Context) (*excelize.File, error)
}
