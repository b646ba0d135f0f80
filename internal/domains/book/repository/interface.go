package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

type RepositoryInterface interface {
	FindAll(ctx context.Context, filter model.Filter) ([]model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error)
	// Create and Update write the book row and its genre links together.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
