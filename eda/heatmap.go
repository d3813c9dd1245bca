package eda

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// rdBuReversed maps -1 to blue, 0 to neutral, and +1 to red.
var rdBuReversed = []string{"#2166ac", "#f7f7f7", "#b2182b"}

// HeatmapChart correlates every pair of the requested numeric columns and
// renders the matrix as a heatmap. Requested columns that are absent or
// non-numeric are skipped; if none survive the filter the chart fails with
// ErrNoValidColumns. Rows with a missing value in any surviving column are
// excluded before correlating.
func HeatmapChart(df *frame.Frame, columns []string, method CorrelationMethod) (*charts.HeatMap, error) {
	corr, err := correlator(method)
	if err != nil {
		return nil, err
	}

	var valid []string
	for _, name := range columns {
		if kind, ok := df.KindOf(name); ok && kind == frame.Numeric {
			valid = append(valid, name)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoValidColumns, strings.Join(columns, ", "))
	}

	sub, err := df.DropNaN(valid...)
	if err != nil {
		return nil, err
	}
	if err := sub.RequireRows(2); err != nil {
		return nil, err
	}
	series := make([][]float64, len(valid))
	for i, name := range valid {
		vals, err := sub.Numeric(name)
		if err != nil {
			return nil, err
		}
		series[i] = vals
	}

	cells := make([]opts.HeatMapData, 0, len(valid)*len(valid))
	for yi := range valid {
		for xi := range valid {
			r := math.Round(corr(series[xi], series[yi])*1000) / 1000
			cells = append(cells, opts.HeatMapData{
				Name:  fmt.Sprintf("%s vs %s: %.3f", valid[xi], valid[yi], r),
				Value: []interface{}{xi, yi, r},
			})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(chartstyle.Base(fmt.Sprintf("Correlation Heatmap for [%s]", strings.Join(valid, ", ")), "")...)
	hm.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Variables",
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Variables",
			Type:      "category",
			Data:      valid,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: rdBuReversed},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		chartstyle.NameTooltip(),
	)
	hm.SetXAxis(valid)
	hm.AddSeries("correlation", cells,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return hm, nil
}

// correlator maps a method name onto its pairwise correlation function.
func correlator(method CorrelationMethod) (func(x, y []float64) float64, error) {
	switch method {
	case MethodPearson:
		return func(x, y []float64) float64 { return stat.Correlation(x, y, nil) }, nil
	case MethodSpearman:
		return func(x, y []float64) float64 { return stat.Correlation(ranks(x), ranks(y), nil) }, nil
	case MethodKendall:
		return func(x, y []float64) float64 { return stat.Kendall(x, y, nil) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrCorrelationMethod, method)
	}
}

// ranks replaces values with their 1-based ranks, averaging ties.
func ranks(vals []float64) []float64 {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	out := make([]float64, len(vals))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && vals[idx[j+1]] == vals[idx[i]] {
			j++
		}
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = rank
		}
		i = j + 1
	}
	return out
}
