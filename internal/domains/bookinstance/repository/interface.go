package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/bookinstance/model"
)

type RepositoryInterface interface {
	FindAll(ctx context.Context, filter model.Filter) ([]model.BookInstance, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	Create(ctx context.Context, bi *model.BookInstance) (*model.BookInstance, error)
	Update(ctx context.Context, bi *model.BookInstance) (*model.BookInstance, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus includes only statuses that have at least one copy.
	CountByStatus(ctx context.Context) (map[model.Status]int, error)
	// CountByBook includes only books that have at least one copy.
	CountByBook(ctx context.Context) (map[uuid.UUID]model.CopyCounts, error)
}
