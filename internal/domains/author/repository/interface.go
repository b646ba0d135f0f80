package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

// RepositoryInterface is the author record store.
type RepositoryInterface interface {
	FindAll(ctx context.Context, filter model.Filter) ([]model.Author, error)
	// FindByID returns model.ErrAuthorNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	// FindByIDs silently skips ids that do not exist.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error)
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
