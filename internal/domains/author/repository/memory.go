package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/infrastructure/memstore"
)

type memoryRepository struct {
	store *memstore.Store[model.Author]
}

// NewMemoryRepository keeps authors in process memory.
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{store: memstore.New[model.Author]()}
}

func (r *memoryRepository) FindAll(_ context.Context, filter model.Filter) ([]model.Author, error) {
	filter = filter.Normalize()
	authors := r.store.All()

	less := lessFuncs[filter.Sort]
	sort.SliceStable(authors, func(i, j int) bool {
		if filter.Order == "desc" {
			return less(authors[j], authors[i])
		}
		return less(authors[i], authors[j])
	})
	return authors, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := r.store.Get(id)
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *memoryRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Author, error) {
	out := make([]model.Author, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.store.Get(id); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryRepository) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.store.Put(created.ID, created)
	return &created, nil
}

func (r *memoryRepository) Update(_ context.Context, a *model.Author) (*model.Author, error) {
	updated, ok := r.store.Update(a.ID, func(old model.Author) model.Author {
		next := *a
		next.CreatedAt = old.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		return next
	})
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &updated, nil
}

// Delete does not see books; the service checks references first.
func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.store.Delete(id) {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	return r.store.Len(), nil
}

var lessFuncs = map[string]func(a, b model.Author) bool{
	model.SortFamilyName: func(a, b model.Author) bool {
		if c := strings.Compare(a.FamilyName, b.FamilyName); c != 0 {
			return c < 0
		}
		return a.FirstName < b.FirstName
	},
	model.SortFirstName: func(a, b model.Author) bool {
		if c := strings.Compare(a.FirstName, b.FirstName); c != 0 {
			return c < 0
		}
		return a.FamilyName < b.FamilyName
	},
	model.SortDateOfBirth: func(a, b model.Author) bool {
		switch {
		case a.DateOfBirth == nil:
			return false
		case b.DateOfBirth == nil:
			return true
		}
		return a.DateOfBirth.Before(*b.DateOfBirth)
	},
	model.SortCreatedAt: func(a, b model.Author) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	},
}
