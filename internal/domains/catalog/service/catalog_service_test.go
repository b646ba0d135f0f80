package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "library-catalog/internal/domains/author/model"
	authorRepo "library-catalog/internal/domains/author/repository"
	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	instanceModel "library-catalog/internal/domains/bookinstance/model"
	instanceRepo "library-catalog/internal/domains/bookinstance/repository"
	"library-catalog/internal/domains/catalog/model"
	genreModel "library-catalog/internal/domains/genre/model"
	genreRepo "library-catalog/internal/domains/genre/repository"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
)

// mapCache is an in-process cache.Cache that keeps JSON like Redis does.
type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{items: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *mapCache) DeletePattern(context.Context, string) error { return nil }
func (m *mapCache) Ping(context.Context) error                  { return nil }

var _ cache.Cache = (*mapCache)(nil)

type repos struct {
	authors   authorRepo.RepositoryInterface
	books     bookRepo.RepositoryInterface
	genres    genreRepo.RepositoryInterface
	instances instanceRepo.RepositoryInterface
}

func newCatalog(t *testing.T, c cache.Cache) (ServiceInterface, repos) {
	t.Helper()
	r := repos{
		authors:   authorRepo.NewMemoryRepository(),
		books:     bookRepo.NewMemoryRepository(),
		genres:    genreRepo.NewMemoryRepository(),
		instances: instanceRepo.NewMemoryRepository(),
	}
	books := bookService.NewBookService(r.books, r.authors, r.genres, r.instances, shared.NopNotifier{})
	return NewCatalogService(r.authors, r.books, r.genres, r.instances, books, c, time.Minute), r
}

func seed(t *testing.T, r repos) *bookModel.Book {
	t.Helper()
	ctx := context.Background()

	a, err := r.authors.Create(ctx, &authorModel.Author{FirstName: "Frank", FamilyName: "Herbert"})
	require.NoError(t, err)
	sf, err := r.genres.Create(ctx, &genreModel.Genre{Name: "Science Fiction"})
	require.NoError(t, err)
	classic, err := r.genres.Create(ctx, &genreModel.Genre{Name: "Classic"})
	require.NoError(t, err)

	b, err := r.books.Create(ctx, &bookModel.Book{
		Title: "Dune", AuthorID: a.ID, Summary: "Spice.", ISBN: "9780441013593",
		GenreIDs: []uuid.UUID{sf.ID, classic.ID},
	})
	require.NoError(t, err)

	for _, st := range []instanceModel.Status{instanceModel.StatusAvailable, instanceModel.StatusAvailable, instanceModel.StatusLoaned} {
		_, err := r.instances.Create(ctx, &instanceModel.BookInstance{BookID: b.ID, Imprint: "Ace", Status: st})
		require.NoError(t, err)
	}
	return b
}

func TestCatalogService_SummaryEmpty(t *testing.T) {
	svc, _ := newCatalog(t, cache.NewNoop())

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.Books)
	assert.Zero(t, s.Copies)
	assert.False(t, s.GeneratedAt.IsZero())
}

func TestCatalogService_SummaryCounts(t *testing.T) {
	svc, r := newCatalog(t, cache.NewNoop())
	seed(t, r)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Books)
	assert.Equal(t, 3, s.Copies)
	assert.Equal(t, 2, s.AvailableCopies)
	assert.Equal(t, 1, s.Authors)
	assert.Equal(t, 2, s.Genres)
}

func TestCatalogService_SummaryIsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	svc, r := newCatalog(t, c)

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, first.Authors)

	_, err = r.authors.Create(ctx, &authorModel.Author{FirstName: "Ann", FamilyName: "Leckie"})
	require.NoError(t, err)

	stale, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, stale.Authors, "served from cache")

	NewSummaryInvalidator(c).CatalogChanged(ctx)

	fresh, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Authors)
}

func TestCatalogService_RefreshOverwritesCache(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	svc, r := newCatalog(t, c)

	_, err := svc.Summary(ctx)
	require.NoError(t, err)
	seed(t, r)

	_, err = svc.Refresh(ctx)
	require.NoError(t, err)

	var cached model.Summary
	found, err := c.Get(ctx, shared.CacheKeyCatalogSummary, &cached)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, cached.Copies)
}

func TestCatalogService_ExportBooks(t *testing.T) {
	svc, r := newCatalog(t, cache.NewNoop())
	b := seed(t, r)

	f, err := svc.ExportBooks(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(model.ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.ExportHeaders, rows[0])
	assert.Equal(t, []string{b.ID.String(), "Dune", "Herbert, Frank", "9780441013593", "Classic, Science Fiction", "3", "2"}, rows[1])
}
