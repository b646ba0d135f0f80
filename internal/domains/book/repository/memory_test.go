package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
)

func TestMemoryRepository_FilterAndSort(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	asimov, tolkien := uuid.New(), uuid.New()
	scifi := uuid.New()

	_, err := repo.Create(ctx, &model.Book{Title: "The Hobbit", AuthorID: tolkien})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Book{Title: "Foundation", AuthorID: asimov, GenreIDs: []uuid.UUID{scifi}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Book{Title: "I, Robot", AuthorID: asimov})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Foundation", "I, Robot", "The Hobbit"}, titles(all))

	byAuthor, err := repo.FindAll(ctx, model.Filter{AuthorID: asimov, Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"I, Robot", "Foundation"}, titles(byAuthor))

	byGenre, err := repo.FindAll(ctx, model.Filter{GenreID: scifi})
	require.NoError(t, err)
	assert.Equal(t, []string{"Foundation"}, titles(byGenre))

	none, err := repo.FindAll(ctx, model.Filter{GenreID: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryRepository_CopiesAreDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	genre := uuid.New()

	created, err := repo.Create(ctx, &model.Book{Title: "Dune", GenreIDs: []uuid.UUID{genre}})
	require.NoError(t, err)
	created.GenreIDs[0] = uuid.New()

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, genre, found.GenreIDs[0])
}

func TestMemoryRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, &model.Book{Title: "Dune"})
	require.NoError(t, err)

	created.Title = "Dune Messiah"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrBookNotFound)
	_, err = repo.Update(ctx, created)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func titles(books []model.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}
