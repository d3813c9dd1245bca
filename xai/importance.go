package xai

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/internal/chartstyle"
	"regviz/ports"
)

// ImportanceChart draws the model's native feature importances as a
// horizontal bar chart, sorted descending and truncated to topN (default 20
// when topN <= 0). Bars are shaded by score on a diverging scale.
func ImportanceChart(model ports.ImportanceProvider, topN int) (*charts.Bar, error) {
	scores, err := model.FeatureImportance()
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ports.ErrNoImportance
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	sorted := append([]ports.FeatureScore(nil), scores...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Score > sorted[b].Score })
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	// Weakest first so the strongest feature lands on top of the category
	// axis once the bars run horizontally.
	categories := make([]string, len(sorted))
	items := make([]opts.BarData, len(sorted))
	for i, s := range sorted {
		pos := len(sorted) - 1 - i
		categories[pos] = s.Feature
		items[pos] = opts.BarData{
			Name:  fmt.Sprintf("%s: %.2f", s.Feature, s.Score),
			Value: s.Score,
		}
	}
	lo, hi := sorted[len(sorted)-1].Score, sorted[0].Score

	bar := charts.NewBar()
	globals := chartstyle.Base(fmt.Sprintf("Top %d Feature Importance", len(sorted)), "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: "Feature Importance", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Features", Type: "category"}),
		chartstyle.NameTooltip(),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: []string{"#b2182b", "#f7f7f7", "#2166ac"}},
		}),
	)
	bar.SetGlobalOptions(globals...)
	bar.SetXAxis(categories)
	bar.XYReversal()
	bar.AddSeries("Importance", items)
	return bar, nil
}
