package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// NPChart monitors the number of defective observations per subgroup of
// nominally constant size. Subgroups are formed by row order (index divided
// by size); a trailing partial subgroup is kept. CL = mean defective count,
// UCL/LCL = n(p̄ ± 3√(p̄(1−p̄)/n)) with the lower limit floored at zero.
func NPChart(df *frame.Frame, column string, subgroupSize int, specs SpecLimits) (*charts.Line, error) {
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

	defectives := bucketDefectives(vals, subgroupSize, specs)
	limits, err := BinomialCountLimits(defectives, subgroupSize)
	if err != nil {
		return nil, err
	}
	peak, _ := stats.Max(defectives)
	yMax := limits.Upper * 1.1
	if peak+1 > yMax {
		yMax = peak + 1
	}

	line := charts.NewLine()
	globals := chartstyle.Base(fmt.Sprintf("NP Chart for %s", column), "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: "Subgroup", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Defectives", Type: "value", Min: 0, Max: yMax}),
	)
	line.SetGlobalOptions(globals...)

	k := len(defectives)
	line.AddSeries("Number Defective", chartstyle.IndexPairs(defectives), chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries("Center Line (CL)", chartstyle.ConstPairs(limits.Center, k), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	line.AddSeries("UCL", chartstyle.ConstPairs(limits.Upper, k), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	line.AddSeries("LCL", chartstyle.ConstPairs(limits.Lower, k), chartstyle.GuideLine(chartstyle.ColorLimit, "dotted")...)
	return line, nil
}

// bucketDefectives sums defective flags per row-order subgroup, keeping the
// trailing partial subgroup.
func bucketDefectives(vals []float64, size int, specs SpecLimits) []float64 {
	k := (len(vals) + size - 1) / size
	sums := make([]float64, k)
	for i, v := range vals {
		if specs.Defective(v) {
			sums[i/size]++
		}
	}
	return sums
}
