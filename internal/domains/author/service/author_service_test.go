package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
)

type countingNotifier struct{ n atomic.Int32 }

func (c *countingNotifier) CatalogChanged(context.Context) { c.n.Add(1) }

func newTestService(t *testing.T) (ServiceInterface, bookRepo.RepositoryInterface, *countingNotifier) {
	t.Helper()
	books := bookRepo.NewMemoryRepository()
	notifier := &countingNotifier{}
	return NewAuthorService(repository.NewMemoryRepository(), books, notifier), books, notifier
}

func TestAuthorService_CreateInvalidDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newTestService(t)

	f := &model.AuthorForm{FirstName: "  ", FamilyName: "Asimov", DateOfBirth: "soon"}
	_, err := svc.Create(ctx, f)

	errs, ok := form.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "First name must be specified", errs.Get("first_name"))
	assert.Equal(t, "Invalid date of birth", errs.Get("date_of_birth"))
	assert.Equal(t, "", f.FirstName, "form is sanitized in place")

	list, err := svc.List(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, notifier.n.Load())
}

func TestAuthorService_CreateUpdateDetail(t *testing.T) {
	ctx := context.Background()
	svc, books, notifier := newTestService(t)

	created, err := svc.Create(ctx, &model.AuthorForm{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: "1920-01-02"})
	require.NoError(t, err)
	assert.Equal(t, "Asimov, Isaac", created.Name())

	_, err = books.Create(ctx, &bookModel.Book{Title: "Foundation", AuthorID: created.ID})
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Author.ID)
	require.Len(t, detail.Books, 1)
	assert.Equal(t, "Foundation", detail.Books[0].Title)

	updated, err := svc.Update(ctx, created.ID, &model.AuthorForm{FirstName: "Isaac", FamilyName: "Asimov", DateOfDeath: "1992-04-06"})
	require.NoError(t, err)
	assert.Nil(t, updated.DateOfBirth)
	assert.Equal(t, "unknown - Apr 6, 1992", updated.Lifespan())

	assert.Equal(t, int32(2), notifier.n.Load())
}

func TestAuthorService_UpdateMissing(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Update(context.Background(), uuid.New(), &model.AuthorForm{FirstName: "a", FamilyName: "b"})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuthorService_DeleteRestrict(t *testing.T) {
	ctx := context.Background()
	svc, books, _ := newTestService(t)

	author, err := svc.Create(ctx, &model.AuthorForm{FirstName: "Isaac", FamilyName: "Asimov"})
	require.NoError(t, err)
	book, err := books.Create(ctx, &bookModel.Book{Title: "Foundation", AuthorID: author.ID})
	require.NoError(t, err)

	detail, err := svc.Delete(ctx, author.ID)
	assert.ErrorIs(t, err, model.ErrAuthorHasBooks)
	assert.ErrorIs(t, err, shared.ErrInUse)
	require.NotNil(t, detail)
	assert.Len(t, detail.Books, 1)

	require.NoError(t, books.Delete(ctx, book.ID))
	_, err = svc.Delete(ctx, author.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, author.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	_, err = svc.Delete(ctx, author.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}
