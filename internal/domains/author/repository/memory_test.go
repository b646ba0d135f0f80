package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
)

func seed(t *testing.T, repo RepositoryInterface, names ...[2]string) []*model.Author {
	t.Helper()
	var out []*model.Author
	for _, n := range names {
		a, err := repo.Create(context.Background(), &model.Author{FirstName: n[0], FamilyName: n[1]})
		require.NoError(t, err)
		out = append(out, a)
	}
	return out
}

func TestMemoryRepository_FindAllEmpty(t *testing.T) {
	authors, err := NewMemoryRepository().FindAll(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, authors)
	assert.Empty(t, authors)
}

func TestMemoryRepository_FindAllSorted(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, [2]string{"Isaac", "Asimov"}, [2]string{"Ben", "Bova"}, [2]string{"Anne", "Asimov"})

	authors, err := repo.FindAll(context.Background(), model.Filter{})
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Asimov, Anne", authors[0].Name())
	assert.Equal(t, "Asimov, Isaac", authors[1].Name())
	assert.Equal(t, "Bova, Ben", authors[2].Name())

	authors, err = repo.FindAll(context.Background(), model.Filter{Sort: model.SortFirstName, Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Isaac", authors[0].FirstName)
}

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	created := seed(t, repo, [2]string{"Isaac", "Asimov"})[0]
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name(), found.Name())

	found.FirstName = "I."
	updated, err := repo.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Asimov, I.", updated.Name())
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	list, err := repo.FindByIDs(ctx, []uuid.UUID{created.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrAuthorNotFound)

	_, err = repo.Update(ctx, &model.Author{ID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}
