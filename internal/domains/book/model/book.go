package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"library-catalog/internal/shared"
)

const URLPrefix = "/catalog/book/"

// Book is a bibliographic record. Author and genres are references by id;
// the service layer resolves them for display.
type Book struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	AuthorID  uuid.UUID   `json:"author_id"`
	Summary   string      `json:"summary"`
	ISBN      string      `json:"isbn"`
	GenreIDs  []uuid.UUID `json:"genre_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (b Book) URL() string {
	return URLFor(b.ID)
}

func URLFor(id uuid.UUID) string {
	return URLPrefix + id.String()
}

// HasGenre reports whether the book is tagged with genreID.
func (b Book) HasGenre(genreID uuid.UUID) bool {
	return lo.Contains(b.GenreIDs, genreID)
}

// ========================================
// LISTING
// ========================================

const (
	SortTitle     = "title"
	SortCreatedAt = "created_at"
)

// Filter narrows and orders the book list. Nil ids mean "any".
type Filter struct {
	AuthorID uuid.UUID
	GenreID  uuid.UUID
	Sort     string
	Order    string
}

func (f Filter) Normalize() Filter {
	f.Sort, f.Order = shared.NormalizeSort(f.Sort, f.Order, []string{SortTitle, SortCreatedAt}, SortTitle)
	return f
}

// Matches applies the id filters to b.
func (f Filter) Matches(b Book) bool {
	if f.AuthorID != uuid.Nil && b.AuthorID != f.AuthorID {
		return false
	}
	if f.GenreID != uuid.Nil && !b.HasGenre(f.GenreID) {
		return false
	}
	return true
}
