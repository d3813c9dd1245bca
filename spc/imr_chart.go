package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// IMRChart renders the two-panel individuals / moving range chart for
// ungrouped measurements. Missing values are dropped before the moving
// ranges are formed; at least two real observations are required. The id
// column feeds the hover text (the range panel names both endpoints of each
// range).
func IMRChart(df *frame.Frame, column, idColumn string) (*components.Page, error) {
	raw, err := df.Numeric(column)
	if err != nil {
		return nil, err
	}
	allIDs, err := df.Labels(idColumn)
	if err != nil {
		return nil, err
	}
	vals, ids := dropMissing(raw, allIDs)
	if len(vals) < 2 {
		return nil, frame.NewInsufficientRowsError(2, len(vals))
	}
	individuals, movingRange, mrs, err := IMRLimits(vals)
	if err != nil {
		return nil, err
	}

	indHover := make([]string, len(vals))
	for i := range vals {
		indHover[i] = fmt.Sprintf("Point %d<br/>Value: %.2f<br/>%s: %s", i, vals[i], idColumn, ids[i])
	}
	mrHover := make([]string, len(mrs))
	for i := range mrs {
		mrHover[i] = fmt.Sprintf("Points %d-%d<br/>Range: %.2f<br/>%s: %s, %s", i, i+1, mrs[i], idColumn, ids[i], ids[i+1])
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("I-MR Control Charts: %s", column)
	page.AddCharts(
		limitPanel(panelSpec{
			title:      "Individuals Chart",
			subtitle:   fmt.Sprintf("%s grouped by %s", column, idColumn),
			yTitle:     "Individual Values",
			seriesName: "Individual",
			color:      chartstyle.ColorSeries,
			values:     vals,
			hover:      indHover,
			limits:     individuals,
		}),
		limitPanel(panelSpec{
			title:      "Moving Range Chart",
			yTitle:     "Moving Range",
			seriesName: "Moving Range",
			color:      chartstyle.ColorAccent,
			values:     mrs,
			hover:      mrHover,
			limits:     movingRange,
		}),
	)
	return page, nil
}

// panelSpec describes one panel of a multi-part control chart.
type panelSpec struct {
	title      string
	subtitle   string
	xTitle     string
	yTitle     string
	seriesName string
	color      string
	values     []float64
	hover      []string
	limits     Limits
}

// limitPanel builds a panel holding the observed series, a CL guide, and
// UCL/LCL mark lines with value labels.
func limitPanel(spec panelSpec) *charts.Line {
	xTitle := spec.xTitle
	if xTitle == "" {
		xTitle = "Observation Number"
	}
	line := charts.NewLine()
	globals := chartstyle.Base(spec.title, spec.subtitle)
	globals = append(globals, chartstyle.ValueAxes(xTitle, spec.yTitle)...)
	globals = append(globals, chartstyle.NameTooltip())
	line.SetGlobalOptions(globals...)

	seriesOpts := append(chartstyle.MarkerLine(spec.color),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "UCL", YAxis: spec.limits.Upper},
			opts.MarkLineNameYAxisItem{Name: "LCL", YAxis: spec.limits.Lower},
		),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			Label:     &opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"},
			LineStyle: &opts.LineStyle{Color: chartstyle.ColorLimit, Type: "dashed"},
		}),
	)
	line.AddSeries(spec.seriesName, chartstyle.NamedIndexPairs(spec.values, spec.hover), seriesOpts...)
	line.AddSeries("CL", chartstyle.ConstPairs(spec.limits.Center, len(spec.values)), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	return line
}
