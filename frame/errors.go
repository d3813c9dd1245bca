package frame

import (
	"errors"
	"fmt"
)

// Errors surfaced by frame accessors and by chart input validation. Chart
// packages wrap these rather than defining their own data-shape errors.
var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnType       = errors.New("column type mismatch")
	ErrLengthMismatch   = errors.New("column length mismatch")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrInsufficientRows = errors.New("insufficient rows")
)

// NewColumnNotFoundError reports a missing column by name.
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// NewColumnTypeError reports a column present with the wrong storage kind.
func NewColumnTypeError(name string, want Kind) error {
	return fmt.Errorf("%w: %q is not %s", ErrColumnType, name, want)
}

// NewInsufficientRowsError reports a row-count precondition failure.
func NewInsufficientRowsError(need, have int) error {
	return fmt.Errorf("%w: need at least %d, have %d", ErrInsufficientRows, need, have)
}

// IsColumnNotFound reports whether err stems from a missing column.
func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

// IsInsufficientRows reports whether err stems from a row-count check.
func IsInsufficientRows(err error) bool {
	return errors.Is(err, ErrInsufficientRows)
}
