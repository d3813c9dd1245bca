package spc

import (
	"errors"
	"fmt"
)

// Configuration errors, all detected before any statistic is computed.
// Data-shape failures reuse the frame package's errors.
var (
	ErrNoSpecLimit     = errors.New("at least one specification limit must be set")
	ErrSubgroupSize    = errors.New("unsupported subgroup size")
	ErrSubgroupData    = errors.New("subgroup size exceeds available data")
	ErrCenterStatistic = errors.New("unknown center statistic")
	ErrSmoothing       = errors.New("smoothing constant must be in (0, 1]")
	ErrLimitWidth      = errors.New("limit width must be positive")
	ErrAlpha           = errors.New("alpha must be in (0, 1)")
	ErrSampleSize      = errors.New("sample sizes must be positive")
)

// NewSubgroupSizeError reports a subgroup size outside the tabulated 2-10
// range.
func NewSubgroupSizeError(size int) error {
	return fmt.Errorf("%w: %d (valid sizes: 2-10)", ErrSubgroupSize, size)
}

// IsConfigError reports whether err is any of the package's configuration
// errors, as opposed to a data-shape or numerical failure.
func IsConfigError(err error) bool {
	for _, sentinel := range []error{
		ErrNoSpecLimit, ErrSubgroupSize, ErrCenterStatistic,
		ErrSmoothing, ErrLimitWidth, ErrAlpha,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
