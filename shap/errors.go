package shap

import (
	"errors"
	"fmt"
)

// ErrRowIndex flags a requested row outside the dataset.
var ErrRowIndex = errors.New("row index out of range")

// NewRowIndexError reports a row request against a frame of rows rows.
func NewRowIndexError(row, rows int) error {
	return fmt.Errorf("%w: row %d of %d", ErrRowIndex, row, rows)
}
