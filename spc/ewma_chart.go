package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// EWMAChart renders an exponentially weighted moving average chart. The
// smoothed series starts at the process mean, and the control band widens
// with each observation toward its asymptote:
// μ ± L·σ̂·√(λ/(2−λ))·√(1−(1−λ)^(2(i+1))). lambda must lie in (0, 1] and
// width (L, conventionally 3) must be positive.
func EWMAChart(df *frame.Frame, column string, lambda, width float64) (*charts.Line, error) {
	raw, err := df.Numeric(column)
	if err != nil {
		return nil, err
	}
	vals, _ := dropMissing(raw, nil)
	if len(vals) < 2 {
		return nil, frame.NewInsufficientRowsError(2, len(vals))
	}
	smoothed, err := EWMASeries(vals, lambda)
	if err != nil {
		return nil, err
	}
	center, upper, lower, err := EWMABands(vals, lambda, width)
	if err != nil {
		return nil, err
	}

	line := charts.NewLine()
	globals := chartstyle.Base(
		fmt.Sprintf("Exponentially Weighted Moving Average Chart (EWMA Chart) for '%s'", column),
		fmt.Sprintf("lambda = %g, width = %g", lambda, width),
	)
	globals = append(globals, chartstyle.ValueAxes("Observation", column)...)
	line.SetGlobalOptions(globals...)

	n := len(smoothed)
	line.AddSeries("EWMA", chartstyle.IndexPairs(smoothed), chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries("Center Line (μ)", chartstyle.ConstPairs(center, n), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	line.AddSeries("UCL", chartstyle.IndexPairs(upper), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	line.AddSeries("LCL", chartstyle.IndexPairs(lower), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	return line, nil
}
