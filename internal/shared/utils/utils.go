package utils

import (
	"time"

	"github.com/google/uuid"
)

// DisplayDateLayout renders dates the way list and detail pages show them (Oct 14, 1983).
const DisplayDateLayout = "Jan 2, 2006"

// ParseStringToUUID returns uuid.Nil for empty or malformed input.
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return uid
}

// FormatDisplayDate renders t with DisplayDateLayout, or "" when t is nil.
func FormatDisplayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
