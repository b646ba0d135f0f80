package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "library-catalog/internal/domains/author/model"
	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	instanceModel "library-catalog/internal/domains/bookinstance/model"
	instanceRepo "library-catalog/internal/domains/bookinstance/repository"
	genreModel "library-catalog/internal/domains/genre/model"
	genreRepo "library-catalog/internal/domains/genre/repository"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
)

type fixture struct {
	svc       ServiceInterface
	books     repository.RepositoryInterface
	authors   authorRepo.RepositoryInterface
	genres    genreRepo.RepositoryInterface
	instances instanceRepo.RepositoryInterface
}

func newFixture() *fixture {
	f := &fixture{
		books:     repository.NewMemoryRepository(),
		authors:   authorRepo.NewMemoryRepository(),
		genres:    genreRepo.NewMemoryRepository(),
		instances: instanceRepo.NewMemoryRepository(),
	}
	f.svc = NewBookService(f.books, f.authors, f.genres, f.instances, shared.NopNotifier{})
	return f
}

func (f *fixture) author(t *testing.T, first, family string) *authorModel.Author {
	t.Helper()
	a, err := f.authors.Create(context.Background(), &authorModel.Author{FirstName: first, FamilyName: family})
	require.NoError(t, err)
	return a
}

func (f *fixture) genre(t *testing.T, name string) *genreModel.Genre {
	t.Helper()
	g, err := f.genres.Create(context.Background(), &genreModel.Genre{Name: name})
	require.NoError(t, err)
	return g
}

func TestBookService_CreateAndPopulate(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	asimov := fx.author(t, "Isaac", "Asimov")
	scifi := fx.genre(t, "Science Fiction")
	classic := fx.genre(t, "Classic")

	created, err := fx.svc.Create(ctx, &model.BookForm{
		Title:  "Foundation",
		Author: asimov.ID.String(),
		ISBN:   "9780553293357",
		Genre:  []string{scifi.ID.String(), classic.ID.String()},
	})
	require.NoError(t, err)

	list, err := fx.svc.List(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asimov, Isaac", list[0].AuthorName())
	require.Len(t, list[0].Genres, 2)
	assert.Equal(t, "Classic", list[0].Genres[0].Name)

	detail, err := fx.svc.Detail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Foundation", detail.Title)
	assert.Empty(t, detail.Instances)
}

func TestBookService_CreateUnknownReferences(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), &model.BookForm{
		Title:  "Ghost",
		Author: uuid.NewString(),
		Genre:  []string{uuid.NewString()},
	})
	errs, ok := form.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Author does not exist", errs.Get("author"))
	assert.Equal(t, "Genre does not exist", errs.Get("genre"))

	all, err := fx.svc.List(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBookService_DanglingAuthorRendersPlaceholder(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	_, err := fx.books.Create(ctx, &model.Book{Title: "Orphan", AuthorID: uuid.New()})
	require.NoError(t, err)

	list, err := fx.svc.List(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Author)
	assert.Equal(t, "(unknown author)", list[0].AuthorName())
}

func TestBookService_UpdateAndDeleteRestrict(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	asimov := fx.author(t, "Isaac", "Asimov")

	book, err := fx.svc.Create(ctx, &model.BookForm{Title: "Foundation", Author: asimov.ID.String()})
	require.NoError(t, err)

	updated, err := fx.svc.Update(ctx, book.ID, &model.BookForm{Title: "Foundation and Empire", Author: asimov.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Foundation and Empire", updated.Title)

	_, err = fx.svc.Update(ctx, uuid.New(), &model.BookForm{Title: "x", Author: asimov.ID.String()})
	assert.ErrorIs(t, err, model.ErrBookNotFound)

	copyOf, err := fx.instances.Create(ctx, &instanceModel.BookInstance{BookID: book.ID, Imprint: "Gnome Press", Status: instanceModel.StatusAvailable})
	require.NoError(t, err)

	detail, err := fx.svc.Delete(ctx, book.ID)
	assert.ErrorIs(t, err, model.ErrBookHasInstances)
	require.NotNil(t, detail)
	assert.Len(t, detail.Instances, 1)

	require.NoError(t, fx.instances.Delete(ctx, copyOf.ID))
	_, err = fx.svc.Delete(ctx, book.ID)
	require.NoError(t, err)

	_, err = fx.svc.Get(ctx, book.ID)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBookService_FormOptions(t *testing.T) {
	fx := newFixture()
	fx.author(t, "Ben", "Bova")
	fx.author(t, "Isaac", "Asimov")
	fx.genre(t, "Poetry")

	opts, err := fx.svc.FormOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, opts.Authors, 2)
	assert.Equal(t, "Asimov", opts.Authors[0].FamilyName)
	assert.Len(t, opts.Genres, 1)
}
