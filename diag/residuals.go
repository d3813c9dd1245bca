package diag

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// ResidualsVsPredicted scatters the signed residuals (actual - predicted)
// against the predicted values, with a dashed zero reference line spanning
// the prediction range. Hover text carries the id column so individual
// misses can be traced back to their observation.
func ResidualsVsPredicted(model ports.Regressor, df *frame.Frame, features []string, target, idColumn string) (*charts.Scatter, error) {
	clean, actual, predicted, err := predictions(model, df, features, target)
	if err != nil {
		return nil, err
	}
	ids, err := clean.Labels(idColumn)
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, len(actual))
	hover := make([]string, len(actual))
	for i := range actual {
		residuals[i] = actual[i] - predicted[i]
		hover[i] = fmt.Sprintf("ID: %s<br/>Predicted: %.2f<br/>Residual: %.2f<br/>Actual: %.2f",
			ids[i], predicted[i], residuals[i], actual[i])
	}

	scatter := charts.NewScatter()
	globals := chartstyle.Base("Residuals vs Predicted Values", "")
	globals = append(globals, chartstyle.ValueAxes("Predicted Values", "Residuals (Actual - Predicted)")...)
	globals = append(globals, chartstyle.NameTooltip())
	scatter.SetGlobalOptions(globals...)
	scatter.AddSeries("Residuals", chartstyle.ScatterPairs(predicted, residuals, hover, 8),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: chartstyle.ColorAccent}))

	lo, _ := stats.Min(predicted)
	hi, _ := stats.Max(predicted)
	zero := charts.NewLine()
	zero.AddSeries("Zero Residual Line", chartstyle.Pairs([]float64{lo, hi}, []float64{0, 0}),
		chartstyle.GuideLine(chartstyle.ColorMuted, "dashed")...)
	scatter.Overlap(zero)
	return scatter, nil
}
