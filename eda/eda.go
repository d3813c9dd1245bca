// Package eda builds the exploratory charts used before any model exists:
// empirical CDFs, five-number boxplots, overlaid histograms, and correlation
// heatmaps. Charts take raw dataset columns and never touch a model.
package eda

import (
	"errors"
	"math"
)

// DefaultBins is the histogram bin count when the caller passes none.
const DefaultBins = 30

// CorrelationMethod selects how the heatmap correlates column pairs.
type CorrelationMethod string

const (
	MethodPearson  CorrelationMethod = "pearson"
	MethodSpearman CorrelationMethod = "spearman"
	MethodKendall  CorrelationMethod = "kendall"
)

// Configuration errors.
var (
	ErrCorrelationMethod = errors.New("unknown correlation method")
	ErrNoValidColumns    = errors.New("none of the selected columns are present")
)

// dropNaN filters missing observations from a numeric column.
func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
