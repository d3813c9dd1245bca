package shap

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// SummaryChart strips every row's attribution per feature. Features are
// ranked by mean absolute attribution, truncated to maxDisplay (default 20
// when maxDisplay <= 0), and drawn strongest at the top.
func SummaryChart(explainer ports.Explainer, model ports.Regressor, df *frame.Frame, features []string, maxDisplay int) (*charts.Scatter, error) {
	att, err := explain(explainer, model, df, features)
	if err != nil {
		return nil, err
	}
	if maxDisplay <= 0 {
		maxDisplay = DefaultMaxDisplay
	}

	type ranked struct {
		feature string
		col     int
		meanAbs float64
	}
	ranks := make([]ranked, len(att.Features))
	for j, feat := range att.Features {
		absVals := make([]float64, att.Rows())
		for i := range absVals {
			absVals[i] = math.Abs(att.Values[i][j])
		}
		m, _ := stats.Mean(absVals)
		ranks[j] = ranked{feature: feat, col: j, meanAbs: m}
	}
	sort.SliceStable(ranks, func(a, b int) bool { return ranks[a].meanAbs > ranks[b].meanAbs })
	if len(ranks) > maxDisplay {
		ranks = ranks[:maxDisplay]
	}

	// The category axis renders index 0 at the bottom, so reverse the rank
	// order to put the strongest feature on top.
	categories := make([]string, len(ranks))
	for i, r := range ranks {
		categories[len(ranks)-1-i] = r.feature
	}

	scatter := charts.NewScatter()
	globals := chartstyle.Base("SHAP Summary Plot", "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: "SHAP Value", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: categories}),
		chartstyle.NameTooltip(),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	scatter.SetGlobalOptions(globals...)

	for rank, r := range ranks {
		items := make([]opts.ScatterData, att.Rows())
		for i := 0; i < att.Rows(); i++ {
			phi := att.Values[i][r.col]
			items[i] = opts.ScatterData{
				Name:       fmt.Sprintf("%s<br/>SHAP Value: %.3f", r.feature, phi),
				Value:      []interface{}{phi, r.feature},
				SymbolSize: 6,
			}
		}
		scatter.AddSeries(r.feature, items, charts.WithItemStyleOpts(opts.ItemStyle{Color: chartstyle.PaletteColor(rank)}))
	}
	return scatter, nil
}
