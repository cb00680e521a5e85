package port

import "errors"

// Typed failures surfaced by lifecycle transitions. Callers decide
// whether a retry makes sense from the specific sentinel, so these must
// survive wrapping (compare with errors.Is).
var (
	ErrNotFound         = errors.New("not found")
	ErrModuleClosed     = errors.New("module closed")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrNotToday         = errors.New("not today")
	ErrInvalidDateRange = errors.New("invalid date range")
)
