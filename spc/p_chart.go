package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// PChart monitors the proportion of defective observations per subgroup.
// Subgroups follow row order and a trailing partial subgroup is kept; its
// observed proportion uses its actual count while the control limits use the
// nominal size. CL = p̄, UCL/LCL = p̄ ± 3√(p̄(1−p̄)/n), lower floored at zero.
func PChart(df *frame.Frame, column string, subgroupSize int, specs SpecLimits) (*charts.Line, error) {
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	if subgroupSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrSubgroupSize, subgroupSize)
	}
	vals, err := numericSeries(df, column, 1)
	if err != nil {
		return nil, err
	}

	k := (len(vals) + subgroupSize - 1) / subgroupSize
	defectives := make([]float64, k)
	counts := make([]float64, k)
	for i, v := range vals {
		g := i / subgroupSize
		counts[g]++
		if specs.Defective(v) {
			defectives[g]++
		}
	}
	props := make([]float64, k)
	for g := range props {
		props[g] = defectives[g] / counts[g]
	}
	limits, err := ProportionLimits(props, subgroupSize)
	if err != nil {
		return nil, err
	}
	yMax := limits.Upper * 1.1
	if yMax < 0.05 {
		yMax = 0.05
	}

	line := charts.NewLine()
	globals := chartstyle.Base(fmt.Sprintf("P Chart for %s", column), "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: "Subgroup", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Proportion Defective", Type: "value", Min: 0, Max: yMax}),
	)
	line.SetGlobalOptions(globals...)

	line.AddSeries("Proportion Defective", chartstyle.IndexPairs(props), chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries("Center Line (CL)", chartstyle.ConstPairs(limits.Center, k), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	line.AddSeries("UCL", chartstyle.ConstPairs(limits.Upper, k), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	line.AddSeries("LCL", chartstyle.ConstPairs(limits.Lower, k), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	return line, nil
}
