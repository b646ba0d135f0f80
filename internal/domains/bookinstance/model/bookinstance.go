package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/utils"
)

const URLPrefix = "/catalog/bookinstance/"

// Status is the availability of a single copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists every status in the order the form offers them.
var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

func (s Status) Valid() bool {
	return lo.Contains(Statuses, s)
}

// BookInstance is one physical, loanable copy of a book.
type BookInstance struct {
	ID        uuid.UUID  `json:"id"`
	BookID    uuid.UUID  `json:"book_id"`
	Imprint   string     `json:"imprint"`
	Status    Status     `json:"status"`
	DueBack   *time.Time `json:"due_back,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (bi BookInstance) URL() string {
	return URLFor(bi.ID)
}

func URLFor(id uuid.UUID) string {
	return URLPrefix + id.String()
}

// DueBackFormatted is empty when no due date is recorded.
func (bi BookInstance) DueBackFormatted() string {
	return utils.FormatDisplayDate(bi.DueBack)
}

// ========================================
// LISTING
// ========================================

const (
	SortCreatedAt = "created_at"
	SortStatus    = "status"
	SortDueBack   = "due_back"
)

// Filter narrows and orders the copy list. The default is insertion order.
type Filter struct {
	BookID uuid.UUID
	Status Status
	Sort   string
	Order  string
}

func (f Filter) Normalize() Filter {
	f.Sort, f.Order = shared.NormalizeSort(f.Sort, f.Order, []string{SortCreatedAt, SortStatus, SortDueBack}, SortCreatedAt)
	return f
}

func (f Filter) Matches(bi BookInstance) bool {
	if f.BookID != uuid.Nil && bi.BookID != f.BookID {
		return false
	}
	if f.Status != "" && bi.Status != f.Status {
		return false
	}
	return true
}

// CopyCounts is how many copies a book has and how many can be borrowed now.
type CopyCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}
