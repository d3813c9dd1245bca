package shap

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// DecisionChart traces each selected row's path from its baseline through
// the attributions in feature order, ending at the model output. Hover text
// on each step carries the signed contribution. rows defaults to the first
// row when empty.
func DecisionChart(explainer ports.Explainer, model ports.Regressor, df *frame.Frame, features []string, rows []int) (*charts.Line, error) {
	att, err := explain(explainer, model, df, features)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		rows = []int{0}
	}
	for _, row := range rows {
		if err := checkRow(df, row); err != nil {
			return nil, err
		}
	}

	labels := append([]string{"Base Value"}, att.Features...)

	line := charts.NewLine()
	globals := chartstyle.Base("SHAP Decision Plot", "")
	globals = append(globals, chartstyle.CategoryAxes("Features (in order)", "Model Output")...)
	globals = append(globals, chartstyle.NameTooltip())
	line.SetGlobalOptions(globals...)
	line.SetXAxis(labels)

	for seriesIdx, row := range rows {
		items := make([]opts.LineData, len(labels))
		cum := att.Baselines[row]
		items[0] = opts.LineData{Name: "Base Value", Value: cum}
		for j, phi := range att.Values[row] {
			cum += phi
			items[j+1] = opts.LineData{
				Name:  fmt.Sprintf("%s: %+.3f", att.Features[j], phi),
				Value: cum,
			}
		}
		line.AddSeries(fmt.Sprintf("Index %d", row), items, chartstyle.MarkerLine(chartstyle.PaletteColor(seriesIdx))...)
	}
	return line, nil
}
