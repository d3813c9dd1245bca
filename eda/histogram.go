package eda

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// HistogramChart bins a numeric column into equal-width intervals and plots
// the counts. A non-empty categoricalColumn splits the counts into one
// translucent overlaid series per category, all sharing the same bin edges.
// bins <= 0 falls back to DefaultBins.
func HistogramChart(df *frame.Frame, numericColumn, categoricalColumn string, bins int) (*charts.Bar, error) {
	vals, err := df.Numeric(numericColumn)
	if err != nil {
		return nil, err
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	clean := dropNaN(vals)
	if len(clean) == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}
	lo, hi := clean[0], clean[0]
	for _, v := range clean {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		bins = 1
	}
	width := (hi - lo) / float64(bins)
	binOf := func(v float64) int {
		if width == 0 {
			return 0
		}
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		return idx
	}

	edges := make([]string, bins)
	for i := 0; i < bins; i++ {
		left := lo + width*float64(i)
		if i == bins-1 {
			edges[i] = fmt.Sprintf("[%.4g, %.4g]", left, hi)
		} else {
			edges[i] = fmt.Sprintf("[%.4g, %.4g)", left, left+width)
		}
	}

	title := fmt.Sprintf("Histogram of '%s'", numericColumn)
	var seriesNames []string
	counts := map[string][]int{}
	if categoricalColumn == "" {
		seriesNames = []string{numericColumn}
		counts[numericColumn] = make([]int, bins)
		for _, v := range clean {
			counts[numericColumn][binOf(v)]++
		}
	} else {
		labels, err := df.Labels(categoricalColumn)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			if _, seen := counts[labels[i]]; !seen {
				seriesNames = append(seriesNames, labels[i])
				counts[labels[i]] = make([]int, bins)
			}
			counts[labels[i]][binOf(v)]++
		}
		title = fmt.Sprintf("Histogram of '%s' grouped by '%s'", numericColumn, categoricalColumn)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(chartstyle.Base(title, "")...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Name:      numericColumn,
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count", Type: "value"}),
	)
	if categoricalColumn == "" {
		bar.SetGlobalOptions(charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}))
	}
	bar.SetXAxis(edges)
	for i, name := range seriesNames {
		items := make([]opts.BarData, bins)
		for b, n := range counts[name] {
			items[b] = opts.BarData{Value: n}
		}
		bar.AddSeries(name, items,
			charts.WithBarChartOpts(opts.BarChart{BarGap: "-100%"}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:   chartstyle.PaletteColor(i),
				Opacity: 0.75,
			}),
		)
	}
	return bar, nil
}
