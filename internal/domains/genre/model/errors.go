package model

import (
	"errors"
	"fmt"

	"library-catalog/internal/shared"
)

var (
	ErrGenreNotFound  = fmt.Errorf("genre %w", shared.ErrNotFound)
	ErrGenreHasBooks  = fmt.Errorf("cannot delete genre with linked books: %w", shared.ErrInUse)
	ErrDuplicateGenre = errors.New("genre with this name already exists")
)
