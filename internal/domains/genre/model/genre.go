package model

import (
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

const URLPrefix = "/catalog/genre/"

// Genre is a named category that books reference.
type Genre struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g Genre) URL() string {
	return URLFor(g.ID)
}

func URLFor(id uuid.UUID) string {
	return URLPrefix + id.String()
}

const (
	SortName      = "name"
	SortCreatedAt = "created_at"
)

// Filter controls list ordering; the default is by name.
type Filter struct {
	Sort  string
	Order string
}

func (f Filter) Normalize() Filter {
	f.Sort, f.Order = shared.NormalizeSort(f.Sort, f.Order, []string{SortName, SortCreatedAt}, SortName)
	return f
}
