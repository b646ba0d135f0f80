package model

import (
	"fmt"

	"library-catalog/internal/shared"
)

var (
	ErrAuthorNotFound = fmt.Errorf("author %w", shared.ErrNotFound)
	ErrAuthorHasBooks = fmt.Errorf("cannot delete author with linked books: %w", shared.ErrInUse)
)
