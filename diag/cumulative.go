package diag

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// CumulativeErrorChart plots the empirical CDF of the absolute residuals.
// The curve steps from 1/n to 1 over the sorted errors, so reading it at a
// given x answers what share of predictions miss by at most that much.
func CumulativeErrorChart(model ports.Regressor, df *frame.Frame, features []string, target string) (*charts.Line, error) {
	_, actual, predicted, err := predictions(model, df, features, target)
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, len(actual))
	for i := range actual {
		residuals[i] = math.Abs(actual[i] - predicted[i])
	}
	sort.Float64s(residuals)

	n := len(residuals)
	items := make([]opts.LineData, n)
	for i, r := range residuals {
		p := float64(i+1) / float64(n)
		items[i] = opts.LineData{
			Name:  fmt.Sprintf("|Residual|: %.3f<br/>Cumulative %%: %.3f", r, p),
			Value: []interface{}{r, p},
		}
	}

	line := charts.NewLine()
	globals := chartstyle.Base("Cumulative Error Distribution of Residuals", "")
	globals = append(globals, chartstyle.ValueAxes("Absolute Residual", "Cumulative Probability")...)
	globals = append(globals, chartstyle.NameTooltip())
	line.SetGlobalOptions(globals...)
	line.AddSeries("Cumulative Error Distribution", items, chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	return line, nil
}
