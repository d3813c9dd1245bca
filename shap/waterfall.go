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

// WaterfallChart breaks one row's prediction into a cascade: attributions
// sorted by descending magnitude, each bar rising or falling from the
// running total, colored by sign. The cascade is a stacked bar whose lower
// segment is transparent. Baseline and final prediction appear in the
// subtitle; bar hover shows the feature's raw value and its contribution.
func WaterfallChart(explainer ports.Explainer, model ports.Regressor, df *frame.Frame, features []string, row int) (*charts.Bar, error) {
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

	categories := make([]string, len(contribs))
	floors := make([]opts.BarData, len(contribs))
	deltas := make([]opts.BarData, len(contribs))
	cum := base
	for i, c := range contribs {
		next := cum + c.shap
		categories[i] = c.feature
		floors[i] = opts.BarData{
			Value:     math.Min(cum, next),
			ItemStyle: &opts.ItemStyle{Color: "transparent"},
		}
		color := chartstyle.ColorPositive
		if c.shap < 0 {
			color = chartstyle.ColorNegative
		}
		deltas[i] = opts.BarData{
			Name:      fmt.Sprintf("%s = %.2f<br/>SHAP: %+.3f", c.feature, c.value, c.shap),
			Value:     math.Abs(c.shap),
			ItemStyle: &opts.ItemStyle{Color: color},
		}
		cum = next
	}

	bar := charts.NewBar()
	globals := chartstyle.Base(
		fmt.Sprintf("SHAP Waterfall Plot (row %d)", row),
		fmt.Sprintf("Base Value: %.2f | Prediction: %.2f", base, prediction),
	)
	globals = append(globals, chartstyle.CategoryAxes("", "Model Output")...)
	globals = append(globals, chartstyle.NameTooltip())
	globals = append(globals, charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}))
	bar.SetGlobalOptions(globals...)
	bar.SetXAxis(categories)
	bar.AddSeries("Base", floors, charts.WithBarChartOpts(opts.BarChart{Stack: "waterfall"}))
	bar.AddSeries("SHAP Value", deltas, charts.WithBarChartOpts(opts.BarChart{Stack: "waterfall"}))
	return bar, nil
}
