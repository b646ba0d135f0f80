package service

import (
	"context"

	"github.com/google/uuid"

	authorModel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	instanceModel "library-catalog/internal/domains/bookinstance/model"
	genreModel "library-catalog/internal/domains/genre/model"
)

// BookView is a book with its author and genres resolved.
// Author is nil when the reference no longer resolves.
type BookView struct {
	model.Book
	Author *authorModel.Author
	Genres []genreModel.Genre
}

// AuthorName falls back to a placeholder for dangling references.
func (v BookView) AuthorName() string {
	if v.Author == nil {
		return "(unknown author)"
	}
	return v.Author.Name()
}

type BookDetail struct {
	BookView
	Instances []instanceModel.BookInstance
}

// FormOptions are the choices the create/update form offers.
type FormOptions struct {
	Authors []authorModel.Author
	Genres  []genreModel.Genre
}

type ServiceInterface interface {
	List(ctx context.Context, filter model.Filter) ([]BookView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Detail(ctx context.Context, id uuid.UUID) (*BookDetail, error)
	FormOptions(ctx context.Context) (*FormOptions, error)

	Create(ctx context.Context, f *model.BookForm) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, f *model.BookForm) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (*BookDetail, error)
}
