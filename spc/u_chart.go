package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// UChart monitors defects per unit with a variable sample size per row.
// Each row's rate uᵢ = defectᵢ/sizeᵢ is charted against the pooled center
// ū = Σdefects/Σsizes and per-row limits ū ± 3√(ū/nᵢ), lower floored at
// zero. Points above their own UCL are drawn as a separate out-of-control
// series. Hover text carries the id column so violations can be traced back
// to the producing unit. Rows missing the measurement or the size are
// dropped.
func UChart(df *frame.Frame, column, sizeColumn, idColumn string, specs SpecLimits) (*charts.Line, error) {
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	clean, err := df.DropNaN(column, sizeColumn)
	if err != nil {
		return nil, err
	}
	vals, err := numericSeries(clean, column, 1)
	if err != nil {
		return nil, err
	}
	sizes, err := clean.Numeric(sizeColumn)
	if err != nil {
		return nil, err
	}
	ids, err := clean.Labels(idColumn)
	if err != nil {
		return nil, err
	}

	defects := make([]float64, len(vals))
	for i, v := range vals {
		if specs.Defective(v) {
			defects[i] = 1
		}
	}
	center, upper, lower, err := RateLimits(defects, sizes)
	if err != nil {
		return nil, err
	}

	rates := make([]float64, len(vals))
	hover := make([]string, len(vals))
	for i := range vals {
		rates[i] = defects[i] / sizes[i]
		hover[i] = fmt.Sprintf("Index: %d<br/>%s: %g<br/>%s: %s", i, column, vals[i], idColumn, ids[i])
	}

	var inControl []opts.LineData
	var outOfControl []opts.ScatterData
	for i, u := range rates {
		if u > upper[i] {
			outOfControl = append(outOfControl, opts.ScatterData{Name: hover[i], Value: []interface{}{i, u}, SymbolSize: 10})
			continue
		}
		inControl = append(inControl, opts.LineData{Name: hover[i], Value: []interface{}{i, u}})
	}

	line := charts.NewLine()
	globals := chartstyle.Base(fmt.Sprintf("U Chart for %s", column), "")
	globals = append(globals, chartstyle.ValueAxes("Observation", "Defects per Unit")...)
	globals = append(globals, chartstyle.NameTooltip())
	line.SetGlobalOptions(globals...)

	n := len(rates)
	line.AddSeries("u (Defects per Unit)", inControl, chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries("Center Line (ū)", chartstyle.ConstPairs(center, n), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	line.AddSeries("UCL", chartstyle.IndexPairs(upper), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	line.AddSeries("LCL", chartstyle.IndexPairs(lower), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)

	if len(outOfControl) > 0 {
		outliers := charts.NewScatter()
		outliers.AddSeries("Out of Control", outOfControl, chartstyle.OutlierMarkers()...)
		line.Overlap(outliers)
	}
	return line, nil
}
