package shap

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// ForceChart lays one row's cascade horizontally, walking from the base
// value to the prediction with bars sorted by descending magnitude and
// colored by each feature's domain. Features absent from the domain map fall
// into "Unknown"; domains absent from the color map get palette colors in
// first-seen order. A dashed mark line pins the final prediction.
func ForceChart(explainer ports.Explainer, model ports.Regressor, df *frame.Frame, features []string, row int, domains, colors map[string]string) (*charts.Bar, error) {
	att, err := explain(explainer, model, df, features)
	if err != nil {
		return nil, err
	}
	if err := checkRow(df, row); err != nil {
		return nil, err
	}
	contribs, err := rowContributions(att, df, row)
	if err != nil {
		return nil, err
	}

	base := att.Baselines[row]
	prediction := att.Prediction(row)

	assigned := make(map[string]string, len(colors))
	for domain, color := range colors {
		assigned[domain] = color
	}
	paletteNext := 0
	colorOf := func(domain string) string {
		if c, ok := assigned[domain]; ok {
			return c
		}
		c := chartstyle.PaletteColor(paletteNext)
		paletteNext++
		assigned[domain] = c
		return c
	}

	categories := make([]string, len(contribs))
	floors := make([]opts.BarData, len(contribs))
	deltas := make([]opts.BarData, len(contribs))
	cum := base
	for i, c := range contribs {
		next := cum + c.shap
		domain, ok := domains[c.feature]
		if !ok {
			domain = "Unknown"
		}
		categories[i] = c.feature
		floors[i] = opts.BarData{
			Value:     math.Min(cum, next),
			ItemStyle: &opts.ItemStyle{Color: "transparent"},
		}
		deltas[i] = opts.BarData{
			Name:      fmt.Sprintf("%s<br/>Value: %.2f<br/>SHAP: %+.3f<br/>Domain: %s", c.feature, c.value, c.shap, domain),
			Value:     math.Abs(c.shap),
			ItemStyle: &opts.ItemStyle{Color: colorOf(domain)},
		}
		cum = next
	}

	bar := charts.NewBar()
	globals := chartstyle.Base(
		fmt.Sprintf("SHAP Force Plot (Domain Colored) for Row %d", row),
		fmt.Sprintf("Base Value: %.2f | Prediction: %.2f", base, prediction),
	)
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: "Prediction Value", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category"}),
		chartstyle.NameTooltip(),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	bar.SetGlobalOptions(globals...)
	bar.SetXAxis(categories)
	bar.XYReversal()
	bar.AddSeries("Base", floors, charts.WithBarChartOpts(opts.BarChart{Stack: "force"}))
	bar.AddSeries("SHAP Value", deltas,
		charts.WithBarChartOpts(opts.BarChart{Stack: "force"}),
		charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "Prediction", XAxis: prediction}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Color: "#000", Type: "dashed", Width: 2},
		}),
	)
	return bar, nil
}
