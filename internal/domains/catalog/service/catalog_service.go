package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	authorRepo "library-catalog/internal/domains/author/repository"
	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	instanceModel "library-catalog/internal/domains/bookinstance/model"
	instanceRepo "library-catalog/internal/domains/bookinstance/repository"
	"library-catalog/internal/domains/catalog/model"
	genreModel "library-catalog/internal/domains/genre/model"
	genreRepo "library-catalog/internal/domains/genre/repository"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/logger"
)

type CatalogService struct {
	authorRepo   authorRepo.RepositoryInterface
	bookRepo     bookRepo.RepositoryInterface
	genreRepo    genreRepo.RepositoryInterface
	instanceRepo instanceRepo.RepositoryInterface
	books        bookService.ServiceInterface
	cache        cache.Cache
	ttl          time.Duration
}

func NewCatalogService(
	authorRepo authorRepo.RepositoryInterface,
	bookRepo bookRepo.RepositoryInterface,
	genreRepo genreRepo.RepositoryInterface,
	instanceRepo instanceRepo.RepositoryInterface,
	books bookService.ServiceInterface,
	cache cache.Cache,
	ttl time.Duration,
) ServiceInterface {
	return &CatalogService{
		authorRepo:   authorRepo,
		bookRepo:     bookRepo,
		genreRepo:    genreRepo,
		instanceRepo: instanceRepo,
		books:        books,
		cache:        cache,
		ttl:          ttl,
	}
}

// ========================================
// SUMMARY
// ========================================

func (s *CatalogService) Summary(ctx context.Context) (*model.Summary, error) {
	var cached model.Summary
	found, err := s.cache.Get(ctx, shared.CacheKeyCatalogSummary, &cached)
	if err != nil {
		logger.Warn("catalog summary cache read failed", err)
	}
	if found {
		return &cached, nil
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) Refresh(ctx context.Context) (*model.Summary, error) {
	summary, err := s.count(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, shared.CacheKeyCatalogSummary, summary, s.ttl); err != nil {
		logger.Warn("catalog summary cache write failed", err)
	}
	return summary, nil
}

func (s *CatalogService) count(ctx context.Context) (*model.Summary, error) {
	var (
		summary  model.Summary
		byStatus map[instanceModel.Status]int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.Books, err = s.bookRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Authors, err = s.authorRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Genres, err = s.genreRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.instanceRepo.CountByStatus(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("count catalog: %w", err)
	}

	summary.Copies = lo.Sum(lo.Values(byStatus))
	summary.AvailableCopies = byStatus[instanceModel.StatusAvailable]
	summary.GeneratedAt = time.Now().UTC()
	return &summary, nil
}

// ========================================
// EXPORT
// ========================================

func (s *CatalogService) ExportBooks(ctx context.Context) (*excelize.File, error) {
	var (
		books  []bookService.BookView
		counts map[uuid.UUID]instanceModel.CopyCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		books, err = s.books.List(gctx, bookModel.Filter{Sort: bookModel.SortTitle})
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.instanceRepo.CountByBook(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load books for export: %w", err)
	}

	rows := lo.Map(books, func(b bookService.BookView, _ int) model.ExportRow {
		c := counts[b.ID]
		return model.ExportRow{
			ID:     b.ID.String(),
			Title:  b.Title,
			Author: b.AuthorName(),
			ISBN:   b.ISBN,
			Genres: strings.Join(lo.Map(b.Genres, func(g genreModel.Genre, _ int) string {
				return g.Name
			}), ", "),
			Copies:    c.Total,
			Available: c.Available,
		}
	})

	f, err := buildWorkbook(rows)
	if err != nil {
		return nil, fmt.Errorf("build export workbook: %w", err)
	}

	log.Info().Int("books", len(rows)).Msg("book export generated")
	return f, nil
}

func buildWorkbook(rows []model.ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", model.ExportSheet); err != nil {
		return nil, err
	}

	for col, header := range model.ExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(model.ExportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(model.ExportHeaders), 1)
	if err := f.SetCellStyle(model.ExportSheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row.Values()
		if err := f.SetSheetRow(model.ExportSheet, start, &values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ========================================
// CHANGE NOTIFICATION
// ========================================

type summaryInvalidator struct {
	cache cache.Cache
}

// NewSummaryInvalidator drops the cached summary on every catalog change so
// the next read recomputes it.
func NewSummaryInvalidator(c cache.Cache) shared.ChangeNotifier {
	return summaryInvalidator{cache: c}
}

func (i summaryInvalidator) CatalogChanged(ctx context.Context) {
	if err := i.cache.Delete(ctx, shared.CacheKeyCatalogSummary); err != nil {
		logger.Warn("catalog summary invalidation failed", err)
	}
}
