package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/genre/model"
)

func TestMemoryRepository_Genres(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	empty, err := repo.FindAll(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	poetry, err := repo.Create(ctx, &model.Genre{Name: "Poetry"})
	require.NoError(t, err)
	fantasy, err := repo.Create(ctx, &model.Genre{Name: "Fantasy"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.Genre{Name: "poetry"})
	assert.ErrorIs(t, err, model.ErrDuplicateGenre)

	found, err := repo.FindByName(ctx, "FANTASY")
	require.NoError(t, err)
	assert.Equal(t, fantasy.ID, found.ID)

	all, err := repo.FindAll(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Poetry"}, []string{all[0].Name, all[1].Name})

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{poetry.ID, uuid.New(), fantasy.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	_, err = repo.Update(ctx, &model.Genre{ID: poetry.ID, Name: "Fantasy"})
	assert.ErrorIs(t, err, model.ErrDuplicateGenre)

	updated, err := repo.Update(ctx, &model.Genre{ID: poetry.ID, Name: "Verse"})
	require.NoError(t, err)
	assert.Equal(t, "Verse", updated.Name)
	assert.Equal(t, poetry.CreatedAt, updated.CreatedAt)

	require.NoError(t, repo.Delete(ctx, poetry.ID))
	_, err = repo.FindByID(ctx, poetry.ID)
	assert.ErrorIs(t, err, model.ErrGenreNotFound)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)
}
