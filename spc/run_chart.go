package spc

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// CenterStatistic selects the run chart's center line.
type CenterStatistic string

const (
	CenterMean   CenterStatistic = "mean"
	CenterMedian CenterStatistic = "median"
)

// RunChart plots raw observations against a mean or median center line with
// no control limits. When timeColumn is non-empty the rows are sorted by it
// (numerically for numeric columns, lexically otherwise) and it becomes the
// x axis; any other center statistic than mean or median is a configuration
// error.
func RunChart(df *frame.Frame, column, timeColumn string, center CenterStatistic) (*charts.Line, error) {
	if center != CenterMean && center != CenterMedian {
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrCenterStatistic, center, CenterMean, CenterMedian)
	}
	clean, err := df.DropNaN(column)
	if err != nil {
		return nil, err
	}
	vals, err := numericSeries(clean, column, 1)
	if err != nil {
		return nil, err
	}

	var timeLabels []string
	if timeColumn != "" {
		order, labels, err := timeOrder(clean, timeColumn)
		if err != nil {
			return nil, err
		}
		sorted := make([]float64, len(vals))
		timeLabels = make([]string, len(vals))
		for i, idx := range order {
			sorted[i] = vals[idx]
			timeLabels[i] = labels[idx]
		}
		vals = sorted
	}

	var centerValue float64
	if center == CenterMean {
		centerValue, _ = stats.Mean(vals)
	} else {
		centerValue, _ = stats.Median(vals)
	}

	xTitle := "Observation"
	if timeColumn != "" {
		xTitle = timeColumn
	}
	line := charts.NewLine()
	globals := chartstyle.Base(fmt.Sprintf("Run Chart for '%s' (statistic: %s)", column, center), "")
	if timeLabels != nil {
		globals = append(globals, chartstyle.CategoryAxes(xTitle, column)...)
	} else {
		globals = append(globals, chartstyle.ValueAxes(xTitle, column)...)
	}
	line.SetGlobalOptions(globals...)

	if timeLabels != nil {
		line.SetXAxis(timeLabels)
		obs := make([]opts.LineData, len(vals))
		guide := make([]opts.LineData, len(vals))
		for i, v := range vals {
			obs[i] = opts.LineData{Value: v}
			guide[i] = opts.LineData{Value: centerValue}
		}
		line.AddSeries(column, obs, chartstyle.MarkerLine(chartstyle.ColorSeries)...)
		line.AddSeries(fmt.Sprintf("Center Line (%s)", center), guide, chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
		return line, nil
	}

	line.AddSeries(column, chartstyle.IndexPairs(vals), chartstyle.MarkerLine(chartstyle.ColorSeries)...)
	line.AddSeries(fmt.Sprintf("Center Line (%s)", center), chartstyle.ConstPairs(centerValue, len(vals)), chartstyle.GuideLine(chartstyle.ColorCenter, "dashed")...)
	return line, nil
}

// timeOrder returns row indices sorted by the time column plus its labels.
func timeOrder(df *frame.Frame, timeColumn string) ([]int, []string, error) {
	labels, err := df.Labels(timeColumn)
	if err != nil {
		return nil, nil, err
	}
	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	if kind, _ := df.KindOf(timeColumn); kind == frame.Numeric {
		times, err := df.Numeric(timeColumn)
		if err != nil {
			return nil, nil, err
		}
		sort.SliceStable(order, func(a, b int) bool { return times[order[a]] < times[order[b]] })
		return order, labels, nil
	}
	sort.SliceStable(order, func(a, b int) bool { return labels[order[a]] < labels[order[b]] })
	return order, labels, nil
}
