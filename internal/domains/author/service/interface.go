package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	bookModel "library-catalog/internal/domains/book/model"
)

// AuthorDetail is an author with the books that reference them.
type AuthorDetail struct {
	Author model.Author
	Books  []bookModel.Book
}

type ServiceInterface interface {
	List(ctx context.Context, filter model.Filter) ([]model.Author, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Author, error)
	Detail(ctx context.Context, id uuid.UUID) (*AuthorDetail, error)

	// Create and Update sanitize f in place and return form.Errors on invalid input.
	Create(ctx context.Context, f *model.AuthorForm) (*model.Author, error)
	Update(ctx context.Context, id uuid.UUID, f *model.AuthorForm) (*model.Author, error)

	// Delete returns the detail alongside ErrAuthorHasBooks so the caller can show what blocks it.
	Delete(ctx context.Context, id uuid.UUID) (*AuthorDetail, error)
}
