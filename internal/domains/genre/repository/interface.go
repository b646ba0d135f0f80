package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/genre/model"
)

type RepositoryInterface interface {
	FindAll(ctx context.Context, filter model.Filter) ([]model.Genre, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error)
	// FindByName matches case-insensitively and returns ErrGenreNotFound on a miss.
	FindByName(ctx context.Context, name string) (*model.Genre, error)
	// Create returns ErrDuplicateGenre when the name is taken.
	Create(ctx context.Context, g *model.Genre) (*model.Genre, error)
	Update(ctx context.Context, g *model.Genre) (*model.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
