package eda

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// BoxplotChart draws the five-number summary of a numeric column, split into
// one box per category when categoricalColumn is non-empty. Every raw
// observation is overlaid on its box so the summary never hides the data.
func BoxplotChart(df *frame.Frame, numericColumn, categoricalColumn string) (*charts.BoxPlot, error) {
	vals, err := df.Numeric(numericColumn)
	if err != nil {
		return nil, err
	}

	var categories []string
	groups := map[string][]float64{}
	title := fmt.Sprintf("Boxplot of '%s'", numericColumn)
	xName := ""
	if categoricalColumn == "" {
		clean := dropNaN(vals)
		if len(clean) > 0 {
			categories = []string{numericColumn}
			groups[numericColumn] = clean
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
			if _, seen := groups[labels[i]]; !seen {
				categories = append(categories, labels[i])
			}
			groups[labels[i]] = append(groups[labels[i]], v)
		}
		title = fmt.Sprintf("Boxplot of '%s' by '%s'", numericColumn, categoricalColumn)
		xName = categoricalColumn
	}
	if len(categories) == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}

	boxes := make([]opts.BoxPlotData, 0, len(categories))
	for _, cat := range categories {
		boxes = append(boxes, opts.BoxPlotData{Name: cat, Value: fiveNumbers(groups[cat])})
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(chartstyle.Base(title, "")...)
	bp.SetGlobalOptions(chartstyle.CategoryAxes(xName, numericColumn)...)
	bp.SetGlobalOptions(charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}))
	bp.SetXAxis(categories)
	bp.AddSeries("Distribution", boxes,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: chartstyle.ColorSeries}),
	)

	points := charts.NewScatter()
	for i, cat := range categories {
		items := make([]opts.ScatterData, 0, len(groups[cat]))
		for _, v := range groups[cat] {
			items = append(items, opts.ScatterData{
				Name:       fmt.Sprintf("%s: %g", numericColumn, v),
				Value:      []interface{}{cat, v},
				SymbolSize: 6,
			})
		}
		points.AddSeries(cat, items,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:   chartstyle.PaletteColor(i),
				Opacity: 0.6,
			}),
		)
	}
	bp.Overlap(points)
	return bp, nil
}

// fiveNumbers summarizes a group as [min, Q1, median, Q3, max], the order the
// boxplot renderer expects.
func fiveNumbers(vals []float64) []float64 {
	if len(vals) == 1 {
		v := vals[0]
		return []float64{v, v, v, v, v}
	}
	lo, _ := stats.Min(vals)
	hi, _ := stats.Max(vals)
	q, _ := stats.Quartile(vals)
	return []float64{lo, q.Q1, q.Q2, q.Q3, hi}
}
