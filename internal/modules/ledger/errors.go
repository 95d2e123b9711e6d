package ledger

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("entry not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
