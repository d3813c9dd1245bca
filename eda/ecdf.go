package eda

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// ECDFChart plots the empirical cumulative distribution of one numeric
// column. Missing values are dropped; each remaining observation contributes
// a 1/n step, so the curve ends at exactly 1.
func ECDFChart(df *frame.Frame, column string) (*charts.Line, error) {
	vals, err := df.Numeric(column)
	if err != nil {
		return nil, err
	}
	clean := dropNaN(vals)
	if len(clean) == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}
	sort.Float64s(clean)

	n := len(clean)
	items := make([]opts.LineData, 0, n)
	for i, v := range clean {
		y := float64(i+1) / float64(n)
		items = append(items, opts.LineData{
			Name:  fmt.Sprintf("%s: %g<br/>ECDF: %.3f", column, v, y),
			Value: []float64{v, y},
		})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(chartstyle.Base(fmt.Sprintf("ECDF Plot of '%s'", column), "")...)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: column, Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ECDF", Type: "value", Min: 0, Max: 1}),
		chartstyle.NameTooltip(),
	)
	line.AddSeries(fmt.Sprintf("ECDF of %s", column), items, chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	return line, nil
}
