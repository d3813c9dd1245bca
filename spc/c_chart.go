package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// CChart monitors the number of defects per observation against the given
// specification limits. Breaches of both bounds count separately, so one
// observation can contribute two defects. CL = c̄, UCL/LCL = c̄ ± 3√c̄ with
// the lower limit floored at zero.
func CChart(df *frame.Frame, column string, specs SpecLimits) (*charts.Line, error) {
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	vals, err := numericSeries(df, column, 1)
	if err != nil {
		return nil, err
	}

	counts := make([]float64, len(vals))
	for i, v := range vals {
		counts[i] = specs.DefectCount(v)
	}
	limits, err := CountLimits(counts)
	if err != nil {
		return nil, err
	}
	peak, _ := stats.Max(counts)
	yMax := limits.Upper * 1.1
	if peak+1 > yMax {
		yMax = peak + 1
	}

	line := charts.NewLine()
	globals := chartstyle.Base(fmt.Sprintf("C Chart for %s", column), "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: "Observation", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Defects per Unit", Type: "value", Min: 0, Max: yMax}),
	)
	line.SetGlobalOptions(globals...)

	n := len(counts)
	line.AddSeries("Defects per Unit", chartstyle.IndexPairs(counts), chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries("Center Line (CL)", chartstyle.ConstPairs(limits.Center, n), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	line.AddSeries("UCL", chartstyle.ConstPairs(limits.Upper, n), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	line.AddSeries("LCL", chartstyle.ConstPairs(limits.Lower, n), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	return line, nil
}
