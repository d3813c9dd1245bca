// Package xai charts a model's own explanation surfaces: native feature
// importance, pairwise interaction strengths, and partial dependence sweeps.
// Unlike package shap these read what the model already knows about itself
// (or, for partial dependence, probe it directly) instead of attributing
// single predictions.
package xai

import "errors"

// DefaultTopN caps how many features or pairs the ranking charts show when
// the caller passes no limit.
const DefaultTopN = 20

// ErrNoFeatures rejects a partial dependence sweep over an empty feature list.
var ErrNoFeatures = errors.New("at least one feature required")

// optimalGridPoints picks a partial dependence grid density from the
// dataset size.
func optimalGridPoints(rows int) int {
	switch {
	case rows < 200:
		return 10
	case rows < 500:
		return 15
	case rows < 1000:
		return 20
	case rows < 5000:
		return 25
	default:
		return 30
	}
}
