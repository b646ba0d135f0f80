package model

import (
	"fmt"

	"library-catalog/internal/shared"
)

var (
	ErrBookNotFound     = fmt.Errorf("book %w", shared.ErrNotFound)
	ErrBookHasInstances = fmt.Errorf("cannot delete book with copies: %w", shared.ErrInUse)
	ErrUnknownReference = fmt.Errorf("book author or genre: %w", shared.ErrInvalidReference)
)
