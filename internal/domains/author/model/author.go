package model

import (
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/utils"
)

// URLPrefix is the canonical path prefix for author pages.
const URLPrefix = "/catalog/author/"

// Author is a person who wrote one or more books.
type Author struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name is "family_name, first_name", exactly as stored.
func (a Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan formats whichever dates are known.
func (a Author) Lifespan() string {
	birth := utils.FormatDisplayDate(a.DateOfBirth)
	death := utils.FormatDisplayDate(a.DateOfDeath)

	switch {
	case birth != "" && death != "":
		return birth + " - " + death
	case birth != "":
		return birth + " - unknown or still living"
	case death != "":
		return "unknown - " + death
	default:
		return "lifespan unknown"
	}
}

func (a Author) URL() string {
	return URLFor(a.ID)
}

// URLFor builds the author page path without loading the record.
func URLFor(id uuid.UUID) string {
	return URLPrefix + id.String()
}

// ========================================
// LISTING
// ========================================

const (
	SortFamilyName  = "family_name"
	SortFirstName   = "first_name"
	SortDateOfBirth = "date_of_birth"
	SortCreatedAt   = "created_at"
)

var sortFields = []string{SortFamilyName, SortFirstName, SortDateOfBirth, SortCreatedAt}

// Filter controls list ordering. The zero value sorts by family name, then first name.
type Filter struct {
	Sort  string
	Order string
}

// Normalize replaces unknown sort keys with the default.
func (f Filter) Normalize() Filter {
	f.Sort, f.Order = shared.NormalizeSort(f.Sort, f.Order, sortFields, SortFamilyName)
	return f
}
