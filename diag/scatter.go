package diag

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// ActualVsPredicted scatters actual against predicted values with a 45
// degree identity line spanning the joint range of both. Hover text carries
// the id column and the signed error (predicted - actual).
func ActualVsPredicted(model ports.Regressor, df *frame.Frame, features []string, target, idColumn string) (*charts.Scatter, error) {
	clean, actual, predicted, err := predictions(model, df, features, target)
	if err != nil {
		return nil, err
	}
	ids, err := clean.Labels(idColumn)
	if err != nil {
		return nil, err
	}

	hover := make([]string, len(actual))
	for i := range actual {
		hover[i] = fmt.Sprintf("ID: %s<br/>Actual: %.2f<br/>Predicted: %.2f<br/>Error: %+.2f",
			ids[i], actual[i], predicted[i], predicted[i]-actual[i])
	}

	scatter := charts.NewScatter()
	globals := chartstyle.Base("Actual vs Predicted Values", "")
	globals = append(globals, chartstyle.ValueAxes("Actual Values", "Predicted Values")...)
	globals = append(globals, chartstyle.NameTooltip())
	scatter.SetGlobalOptions(globals...)
	scatter.AddSeries("Predicted vs Actual", chartstyle.ScatterPairs(actual, predicted, hover, 8),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: chartstyle.ColorSeries}))

	loActual, _ := stats.Min(actual)
	loPredicted, _ := stats.Min(predicted)
	hiActual, _ := stats.Max(actual)
	hiPredicted, _ := stats.Max(predicted)
	lo := math.Min(loActual, loPredicted)
	hi := math.Max(hiActual, hiPredicted)

	ident := charts.NewLine()
	ident.AddSeries("45° Reference Line", chartstyle.Pairs([]float64{lo, hi}, []float64{lo, hi}),
		chartstyle.GuideLine(chartstyle.ColorMuted, "dashed")...)
	scatter.Overlap(ident)
	return scatter, nil
}
