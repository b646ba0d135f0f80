package service

import (
	"context"

	"github.com/google/uuid"

	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/bookinstance/model"
)

// InstanceView is a copy with its book resolved. Book is nil for a dangling reference.
type InstanceView struct {
	model.BookInstance
	Book *bookModel.Book
}

func (v InstanceView) BookTitle() string {
	if v.Book == nil {
		return "(unknown book)"
	}
	return v.Book.Title
}

type ServiceInterface interface {
	List(ctx context.Context, filter model.Filter) ([]InstanceView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	Detail(ctx context.Context, id uuid.UUID) (*InstanceView, error)
	// BookOptions lists every book by title for the form's select box.
	BookOptions(ctx context.Context) ([]bookModel.Book, error)

	Create(ctx context.Context, f *model.BookInstanceForm) (*model.BookInstance, error)
	Update(ctx context.Context, id uuid.UUID, f *model.BookInstanceForm) (*model.BookInstance, error)
	Delete(ctx context.Context, id uuid.UUID) (*InstanceView, error)
}
