// Package spc builds Shewhart-style statistical process control charts:
// attribute charts (c, np, p, u), measurement charts (I-MR, X-bar/R,
// X-bar/S), EWMA, run charts, and the multivariate Hotelling T² chart.
//
// Every chart function follows the same path: validate configuration, pull
// the needed columns, derive center line and control limits under that
// chart's statistical model, and assemble an interactive chart. Lower limits
// of quantities that cannot go negative are floored at zero. Out-of-control
// points are drawn as a separate series where the chart calls for it.
// Measurement charts drop rows whose inputs are missing; the attribute
// charts (c, np, p) keep row positions and count a missing value as
// conforming.
package spc

import (
	"math"

	"regviz/frame"
)

// numericSeries pulls a numeric column and enforces a minimum length.
func numericSeries(df *frame.Frame, column string, min int) ([]float64, error) {
	vals, err := df.Numeric(column)
	if err != nil {
		return nil, err
	}
	if len(vals) < min {
		return nil, frame.NewInsufficientRowsError(min, len(vals))
	}
	return vals, nil
}

// dropMissing filters NaN observations, keeping ids aligned. ids may be nil.
func dropMissing(vals []float64, ids []string) ([]float64, []string) {
	outVals := make([]float64, 0, len(vals))
	var outIDs []string
	if ids != nil {
		outIDs = make([]string, 0, len(ids))
	}
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		outVals = append(outVals, v)
		if ids != nil {
			outIDs = append(outIDs, ids[i])
		}
	}
	return outVals, outIDs
}
