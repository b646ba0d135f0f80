package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/infrastructure/memstore"
)

type memoryRepository struct {
	store *memstore.Store[model.BookInstance]
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{store: memstore.New[model.BookInstance]()}
}

func (r *memoryRepository) FindAll(_ context.Context, filter model.Filter) ([]model.BookInstance, error) {
	filter = filter.Normalize()
	instances := r.store.Filter(filter.Matches)
	if instances == nil {
		return []model.BookInstance{}, nil
	}

	// The store already yields insertion order, which is the created_at order.
	if filter.Sort == model.SortCreatedAt {
		if filter.Order == "desc" {
			for i, j := 0, len(instances)-1; i < j; i, j = i+1, j-1 {
				instances[i], instances[j] = instances[j], instances[i]
			}
		}
		return instances, nil
	}

	sort.SliceStable(instances, func(i, j int) bool {
		a, b := instances[i], instances[j]
		if filter.Sort == model.SortDueBack {
			// Undated copies stay last in both directions, like NULLS LAST.
			switch {
			case a.DueBack == nil:
				return false
			case b.DueBack == nil:
				return true
			}
		}
		if filter.Order == "desc" {
			a, b = b, a
		}
		if filter.Sort == model.SortStatus {
			return a.Status < b.Status
		}
		return a.DueBack.Before(*b.DueBack)
	})
	return instances, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.BookInstance, error) {
	bi, ok := r.store.Get(id)
	if !ok {
		return nil, model.ErrBookInstanceNotFound
	}
	return &bi, nil
}

func (r *memoryRepository) Create(_ context.Context, bi *model.BookInstance) (*model.BookInstance, error) {
	created := *bi
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.store.Put(created.ID, created)
	return &created, nil
}

func (r *memoryRepository) Update(_ context.Context, bi *model.BookInstance) (*model.BookInstance, error) {
	updated, ok := r.store.Update(bi.ID, func(old model.BookInstance) model.BookInstance {
		next := *bi
		next.CreatedAt = old.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		return next
	})
	if !ok {
		return nil, model.ErrBookInstanceNotFound
	}
	return &updated, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.store.Delete(id) {
		return model.ErrBookInstanceNotFound
	}
	return nil
}

func (r *memoryRepository) CountByStatus(_ context.Context) (map[model.Status]int, error) {
	counts := make(map[model.Status]int)
	for _, bi := range r.store.All() {
		counts[bi.Status]++
	}
	return counts, nil
}

func (r *memoryRepository) CountByBook(_ context.Context) (map[uuid.UUID]model.CopyCounts, error) {
	counts := make(map[uuid.UUID]model.CopyCounts)
	for _, bi := range r.store.All() {
		c := counts[bi.BookID]
		c.Total++
		if bi.Status == model.StatusAvailable {
			c.Available++
		}
		counts[bi.BookID] = c
	}
	return counts, nil
}
