package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/infrastructure/memstore"
)

type memoryRepository struct {
	// mu serializes writes so the unique-name check and the insert are atomic.
	mu    sync.Mutex
	store *memstore.Store[model.Genre]
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{store: memstore.New[model.Genre]()}
}

func (r *memoryRepository) FindAll(_ context.Context, filter model.Filter) ([]model.Genre, error) {
	filter = filter.Normalize()
	genres := r.store.All()

	sort.SliceStable(genres, func(i, j int) bool {
		a, b := genres[i], genres[j]
		if filter.Order == "desc" {
			a, b = b, a
		}
		if filter.Sort == model.SortCreatedAt {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	})
	return genres, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Genre, error) {
	g, ok := r.store.Get(id)
	if !ok {
		return nil, model.ErrGenreNotFound
	}
	return &g, nil
}

func (r *memoryRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	out := make([]model.Genre, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.store.Get(id); ok {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) FindByName(_ context.Context, name string) (*model.Genre, error) {
	matches := r.store.Filter(func(g model.Genre) bool { return strings.EqualFold(g.Name, name) })
	if len(matches) == 0 {
		return nil, model.ErrGenreNotFound
	}
	return &matches[0], nil
}

func (r *memoryRepository) Create(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.FindByName(ctx, g.Name); err == nil {
		return nil, model.ErrDuplicateGenre
	}

	created := *g
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.store.Put(created.ID, created)
	return &created, nil
}

func (r *memoryRepository) Update(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if other, err := r.FindByName(ctx, g.Name); err == nil && other.ID != g.ID {
		return nil, model.ErrDuplicateGenre
	}

	updated, ok := r.store.Update(g.ID, func(old model.Genre) model.Genre {
		old.Name = g.Name
		old.UpdatedAt = time.Now().UTC()
		return old
	})
	if !ok {
		return nil, model.ErrGenreNotFound
	}
	return &updated, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.store.Delete(id) {
		return model.ErrGenreNotFound
	}
	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	return r.store.Len(), nil
}
