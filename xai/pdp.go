package xai

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/montanaflynn/stats"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// PartialDependenceChart sweeps each feature over a grid spanning its
// observed range (endpoints exact), holding every other column at its
// per-row value, and plots the mean prediction per grid point as one series
// per feature. Rows missing any feature are dropped before the sweep.
// gridPoints <= 0 selects a density from the dataset size.
func PartialDependenceChart(model ports.Regressor, df *frame.Frame, features []string, gridPoints int) (*charts.Line, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	clean, err := df.DropNaN(features...)
	if err != nil {
		return nil, err
	}
	if err := clean.RequireRows(1); err != nil {
		return nil, err
	}
	if gridPoints <= 0 {
		gridPoints = optimalGridPoints(clean.Rows())
	}

	line := charts.NewLine()
	globals := chartstyle.Base(
		fmt.Sprintf("Combined Partial Dependence Plots of [%s]", strings.Join(features, ", ")),
		"",
	)
	globals = append(globals, chartstyle.ValueAxes("Feature Value", "Average Prediction")...)
	line.SetGlobalOptions(globals...)

	constant := make([]float64, clean.Rows())
	for idx, feature := range features {
		vals, err := clean.Numeric(feature)
		if err != nil {
			return nil, err
		}
		grid, err := buildGrid(vals, gridPoints)
		if err != nil {
			return nil, err
		}
		curve := make([]float64, len(grid))
		for gi, gv := range grid {
			for i := range constant {
				constant[i] = gv
			}
			sweep, err := clean.WithNumeric(feature, constant)
			if err != nil {
				return nil, err
			}
			preds, err := model.Predict(sweep)
			if err != nil {
				return nil, err
			}
			curve[gi], _ = stats.Mean(preds)
		}
		line.AddSeries(feature, chartstyle.Pairs(grid, curve), chartstyle.MarkerLine(chartstyle.PaletteColor(idx))...)
	}
	return line, nil
}

// buildGrid spans points evenly spaced values across the observed range with
// exact endpoints. NaN observations do not contribute to the bounds; a
// constant column collapses to a single grid point.
func buildGrid(vals []float64, points int) ([]float64, error) {
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}
	lo, _ := stats.Min(clean)
	hi, _ := stats.Max(clean)
	if points == 1 || lo == hi {
		return []float64{lo}, nil
	}
	grid := make([]float64, points)
	step := (hi - lo) / float64(points-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[points-1] = hi
	return grid, nil
}
