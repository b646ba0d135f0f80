package service

import (
	"context"

	"github.com/google/uuid"

	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/genre/model"
)

type GenreDetail struct {
	Genre model.Genre
	Books []bookModel.Book
}

type ServiceInterface interface {
	List(ctx context.Context, filter model.Filter) ([]model.Genre, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	Detail(ctx context.Context, id uuid.UUID) (*GenreDetail, error)
	// Create returns the existing genre when the name is already taken (any case).
	Create(ctx context.Context, f *model.GenreForm) (*model.Genre, error)
	Update(ctx context.Context, id uuid.UUID, f *model.GenreForm) (*model.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) (*GenreDetail, error)
}
