package chartstyle

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// IndexPairs builds line items at x = 0..n-1.
func IndexPairs(ys []float64) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i, y := range ys {
		items[i] = opts.LineData{Value: []interface{}{i, y}}
	}
	return items
}

// NamedIndexPairs builds line items at x = 0..n-1 carrying per-point hover
// text in the item name. Pair with NameTooltip.
func NamedIndexPairs(ys []float64, names []string) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i, y := range ys {
		items[i] = opts.LineData{Name: names[i], Value: []interface{}{i, y}}
	}
	return items
}

// Pairs builds line items from explicit x/y values.
func Pairs(xs, ys []float64) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i := range ys {
		items[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return items
}

// ConstPairs builds a horizontal guide at height v across x = 0..n-1.
func ConstPairs(v float64, n int) []opts.LineData {
	items := make([]opts.LineData, n)
	for i := range items {
		items[i] = opts.LineData{Value: []interface{}{i, v}}
	}
	return items
}

// ScatterPairs builds scatter items from explicit x/y values with optional
// hover names. names may be nil.
func ScatterPairs(xs, ys []float64, names []string, symbolSize int) []opts.ScatterData {
	items := make([]opts.ScatterData, len(ys))
	for i := range ys {
		item := opts.ScatterData{Value: []interface{}{xs[i], ys[i]}, SymbolSize: symbolSize}
		if names != nil {
			item.Name = names[i]
		}
		items[i] = item
	}
	return items
}

// MarkerLine styles an observation series: visible symbols, solid line.
func MarkerLine(color string) []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 1}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	}
}

// GuideLine styles a center or control limit: no symbols, dashed or dotted.
func GuideLine(color, lineType string) []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Type: lineType, Width: 1.5}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	}
}

// OutlierMarkers styles the out-of-control overlay series.
func OutlierMarkers() []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorLimit}),
	}
}
