package shared

import "errors"

// Domain sentinels wrap these so the HTTP layer can classify any domain's error.
var (
	ErrNotFound         = errors.New("not found")
	ErrInUse            = errors.New("record is still referenced")
	ErrInvalidReference = errors.New("referenced record does not exist")
)
