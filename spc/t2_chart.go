package spc

import (
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// T2Chart renders a Hotelling T² control chart over several numeric columns
// jointly: per row, T² = (x−x̄)ᵀS⁻¹(x−x̄) with the sample covariance S, and
// UCL = p(n−1)(n+1)/(n(n−p)) · F⁻¹(1−α; p, n−p). Rows with a missing value
// in any monitored column are dropped. The x axis carries the id column so a
// violation points at a concrete unit; points above the UCL are drawn as a
// separate series and the hover text lists every monitored value.
func T2Chart(df *frame.Frame, columns []string, idColumn string, alpha float64) (*charts.Line, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrAlpha, alpha)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns to monitor", frame.ErrColumnNotFound)
	}
	clean, err := df.DropNaN(columns...)
	if err != nil {
		return nil, err
	}
	rows, err := clean.Matrix(columns...)
	if err != nil {
		return nil, err
	}
	ids, err := clean.Labels(idColumn)
	if err != nil {
		return nil, err
	}

	t2, ucl, err := HotellingT2(rows, alpha)
	if err != nil {
		return nil, err
	}

	hover := make([]string, len(t2))
	for i := range t2 {
		var b strings.Builder
		fmt.Fprintf(&b, "Index: %s<br/>T²: %.2f", ids[i], t2[i])
		for j, col := range columns {
			fmt.Fprintf(&b, "<br/>%s: %.2f", col, rows[i][j])
		}
		hover[i] = b.String()
	}

	observed := make([]opts.LineData, len(t2))
	guide := make([]opts.LineData, len(t2))
	var outliers []opts.ScatterData
	for i, v := range t2 {
		observed[i] = opts.LineData{Name: hover[i], Value: v}
		guide[i] = opts.LineData{Value: ucl}
		if v > ucl {
			outliers = append(outliers, opts.ScatterData{Name: hover[i], Value: []interface{}{ids[i], v}, SymbolSize: 10})
		}
	}

	line := charts.NewLine()
	globals := chartstyle.Base(
		fmt.Sprintf("Hotelling's T² Control Chart for the variable combination of: [%s]", strings.Join(columns, ", ")),
		fmt.Sprintf("alpha = %g", alpha),
	)
	globals = append(globals, chartstyle.CategoryAxes(idColumn, "T² Statistic")...)
	globals = append(globals, chartstyle.NameTooltip())
	line.SetGlobalOptions(globals...)

	line.SetXAxis(ids)
	line.AddSeries("T² Statistic", observed, chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries(fmt.Sprintf("UCL (α=%g)", alpha), guide, chartstyle.GuideLine(chartstyle.ColorLimit, "dashed")...)

	if len(outliers) > 0 {
		out := charts.NewScatter()
		out.AddSeries("Out of Control", outliers, chartstyle.OutlierMarkers()...)
		line.Overlap(out)
	}
	return line, nil
}
