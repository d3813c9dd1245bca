package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// PredictionTimeSeries plots the actual and predicted series over the id
// column, string-coerced and sorted lexically. Hover text lists the id,
// actual, predicted, and every feature value of the row.
func PredictionTimeSeries(model ports.Regressor, df *frame.Frame, features []string, target, idColumn string) (*charts.Line, error) {
	clean, actual, predicted, err := predictions(model, df, features, target)
	if err != nil {
		return nil, err
	}
	ids, err := clean.Labels(idColumn)
	if err != nil {
		return nil, err
	}
	featureLabels := make([][]string, len(features))
	for j, feat := range features {
		featureLabels[j], err = clean.Labels(feat)
		if err != nil {
			return nil, err
		}
	}

	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ids[order[a]] < ids[order[b]] })

	xs := make([]string, len(order))
	actualItems := make([]opts.LineData, len(order))
	predictedItems := make([]opts.LineData, len(order))
	for pos, i := range order {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s<br/>Actual: %g<br/>Predicted: %.2f", idColumn, ids[i], actual[i], predicted[i])
		for j, feat := range features {
			fmt.Fprintf(&b, "<br/>%s: %s", feat, featureLabels[j][i])
		}
		xs[pos] = ids[i]
		actualItems[pos] = opts.LineData{Name: b.String(), Value: actual[i]}
		predictedItems[pos] = opts.LineData{Name: b.String(), Value: predicted[i]}
	}

	line := charts.NewLine()
	globals := chartstyle.Base("Model Predictions vs. Actual Values", "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 90}}),
		charts.WithYAxisOpts(opts.YAxis{Name: target, Type: "value", Scale: opts.Bool(true)}),
		chartstyle.NameTooltip(),
	)
	line.SetGlobalOptions(globals...)
	line.SetXAxis(xs)
	line.AddSeries("Actual", actualItems, chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries("Predicted", predictedItems,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: chartstyle.ColorLimit, Type: "dashed", Width: 1}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: chartstyle.ColorLimit}),
	)
	return line, nil
}
