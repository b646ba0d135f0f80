package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/memstore"
)

type memoryRepository struct {
	store *memstore.Store[model.Book]
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{store: memstore.New[model.Book]()}
}

func (r *memoryRepository) FindAll(_ context.Context, filter model.Filter) ([]model.Book, error) {
	filter = filter.Normalize()
	books := r.store.Filter(filter.Matches)
	if books == nil {
		books = []model.Book{}
	}

	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		if filter.Order == "desc" {
			a, b = b, a
		}
		if filter.Sort == model.SortCreatedAt {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Title < b.Title
	})
	return lo.Map(books, func(b model.Book, _ int) model.Book { return clone(b) }), nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := r.store.Get(id)
	if !ok {
		return nil, model.ErrBookNotFound
	}
	b = clone(b)
	return &b, nil
}

func (r *memoryRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Book, error) {
	out := make([]model.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.store.Get(id); ok {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (r *memoryRepository) Create(_ context.Context, b *model.Book) (*model.Book, error) {
	created := clone(*b)
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.store.Put(created.ID, created)

	out := clone(created)
	return &out, nil
}

func (r *memoryRepository) Update(_ context.Context, b *model.Book) (*model.Book, error) {
	updated, ok := r.store.Update(b.ID, func(old model.Book) model.Book {
		next := clone(*b)
		next.CreatedAt = old.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		return next
	})
	if !ok {
		return nil, model.ErrBookNotFound
	}
	out := clone(updated)
	return &out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.store.Delete(id) {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	return r.store.Len(), nil
}

// clone detaches the genre slice from the stored copy.
func clone(b model.Book) model.Book {
	b.GenreIDs = append([]uuid.UUID{}, b.GenreIDs...)
	return b
}
