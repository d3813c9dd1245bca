package diag

import (
	"errors"
	"math"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regviz/frame"
)

// scaleModel predicts shift + scale*x from a single feature column.
type scaleModel struct {
	feature string
	scale   float64
	shift   float64
}

func (m scaleModel) Predict(df *frame.Frame) ([]float64, error) {
	xs, err := df.Numeric(m.feature)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.shift + m.scale*x
	}
	return out, nil
}

type failingModel struct{}

func (failingModel) Predict(*frame.Frame) ([]float64, error) {
	return nil, errors.New("scorer offline")
}

func diagFrame(t *testing.T) *frame.Frame {
	t.Helper()
	df, err := frame.New(
		frame.StringColumn("unit_id", []string{"U-03", "U-01", "U-02", "U-04"}),
		frame.NumericColumn("x", []float64{1, 2, 3, 4}),
		frame.NumericColumn("y", []float64{2.5, 3.5, 6.5, 8.0}),
	)
	require.NoError(t, err)
	return df
}

func xyPair(t *testing.T, item opts.LineData) (float64, float64) {
	t.Helper()
	v, ok := item.Value.([]interface{})
	require.True(t, ok, "line item value has type %T", item.Value)
	return v[0].(float64), v[1].(float64)
}

func TestCumulativeErrorChart_ECDF(t *testing.T) {
	// Predictions 2,4,6,8 against 2.5,3.5,6.5,8 give |residuals| .5,.5,.5,0.
	line, err := CumulativeErrorChart(scaleModel{feature: "x", scale: 2}, diagFrame(t), []string{"x"}, "y")
	require.NoError(t, err)
	require.Len(t, line.MultiSeries, 1)
	assert.Equal(t, "Cumulative Error Distribution", line.MultiSeries[0].Name)

	data, ok := line.MultiSeries[0].Data.([]opts.LineData)
	require.True(t, ok)
	require.Len(t, data, 4)

	prevX := -1.0
	for i, item := range data {
		x, y := xyPair(t, item)
		assert.GreaterOrEqual(t, x, prevX, "absolute residuals must be sorted")
		assert.InDelta(t, float64(i+1)/4, y, 1e-12)
		prevX = x
	}
	_, last := xyPair(t, data[3])
	assert.Equal(t, 1.0, last)
}

func TestCumulativeErrorChart_PerfectConstantModel(t *testing.T) {
	n := 10
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range ys {
		xs[i] = float64(i)
		ys[i] = 5
	}
	df, err := frame.New(frame.NumericColumn("x", xs), frame.NumericColumn("y", ys))
	require.NoError(t, err)

	line, err := CumulativeErrorChart(scaleModel{feature: "x", shift: 5}, df, []string{"x"}, "y")
	require.NoError(t, err)
	data := line.MultiSeries[0].Data.([]opts.LineData)
	require.Len(t, data, n)
	for _, item := range data {
		x, _ := xyPair(t, item)
		assert.Zero(t, x, "constant target hit exactly must leave zero residuals")
	}
	_, last := xyPair(t, data[n-1])
	assert.Equal(t, 1.0, last)
}

func TestCumulativeErrorChart_FailsFast(t *testing.T) {
	df := diagFrame(t)

	_, err := CumulativeErrorChart(scaleModel{feature: "x"}, df, []string{"x"}, "nope")
	assert.True(t, frame.IsColumnNotFound(err), "missing target: %v", err)

	_, err = CumulativeErrorChart(scaleModel{feature: "x"}, df, []string{"nope"}, "y")
	assert.True(t, frame.IsColumnNotFound(err), "missing feature: %v", err)

	empty, err := frame.New(frame.NumericColumn("x", nil), frame.NumericColumn("y", nil))
	require.NoError(t, err)
	_, err = CumulativeErrorChart(scaleModel{feature: "x"}, empty, []string{"x"}, "y")
	assert.True(t, frame.IsInsufficientRows(err), "empty frame: %v", err)

	_, err = CumulativeErrorChart(failingModel{}, df, []string{"x"}, "y")
	assert.ErrorContains(t, err, "scorer offline")
}

func TestResidualsVsPredicted_Layout(t *testing.T) {
	sc, err := ResidualsVsPredicted(scaleModel{feature: "x", scale: 2}, diagFrame(t), []string{"x"}, "y", "unit_id")
	require.NoError(t, err)
	require.Len(t, sc.MultiSeries, 2)
	assert.Equal(t, "Residuals", sc.MultiSeries[0].Name)
	assert.Equal(t, "Zero Residual Line", sc.MultiSeries[1].Name)

	points, ok := sc.MultiSeries[0].Data.([]opts.ScatterData)
	require.True(t, ok)
	require.Len(t, points, 4)
	first := points[0].Value.([]interface{})
	assert.Equal(t, 2.0, first[0], "x is the prediction")
	assert.InDelta(t, 0.5, first[1].(float64), 1e-12)
	assert.Contains(t, points[0].Name, "ID: U-03")
	assert.Contains(t, points[0].Name, "Residual: 0.50")

	guide, ok := sc.MultiSeries[1].Data.([]opts.LineData)
	require.True(t, ok)
	require.Len(t, guide, 2)
	x0, y0 := xyPair(t, guide[0])
	x1, y1 := xyPair(t, guide[1])
	assert.Equal(t, 2.0, x0)
	assert.Equal(t, 8.0, x1)
	assert.Zero(t, y0)
	assert.Zero(t, y1)
}

func TestResidualsVsPredicted_DropsMissingRows(t *testing.T) {
	df, err := frame.New(
		frame.StringColumn("unit_id", []string{"U-01", "U-02", "U-03", "U-04"}),
		frame.NumericColumn("x", []float64{1, math.NaN(), 3, 4}),
		frame.NumericColumn("y", []float64{2.5, 3.5, math.NaN(), 8.0}),
	)
	require.NoError(t, err)

	sc, err := ResidualsVsPredicted(scaleModel{feature: "x", scale: 2}, df, []string{"x"}, "y", "unit_id")
	require.NoError(t, err)
	points := sc.MultiSeries[0].Data.([]opts.ScatterData)
	require.Len(t, points, 2)
	assert.Contains(t, points[0].Name, "ID: U-01")
	assert.Contains(t, points[1].Name, "ID: U-04")
}

func TestActualVsPredicted_IdentityLine(t *testing.T) {
	sc, err := ActualVsPredicted(scaleModel{feature: "x", scale: 2}, diagFrame(t), []string{"x"}, "y", "unit_id")
	require.NoError(t, err)
	require.Len(t, sc.MultiSeries, 2)
	assert.Equal(t, "Predicted vs Actual", sc.MultiSeries[0].Name)
	assert.Equal(t, "45° Reference Line", sc.MultiSeries[1].Name)

	// Actuals span 2.5..8, predictions 2..8: the identity line takes the
	// joint extremes.
	guide := sc.MultiSeries[1].Data.([]opts.LineData)
	x0, y0 := xyPair(t, guide[0])
	x1, y1 := xyPair(t, guide[1])
	assert.Equal(t, 2.0, x0)
	assert.Equal(t, 2.0, y0)
	assert.Equal(t, 8.0, x1)
	assert.Equal(t, 8.0, y1)

	points := sc.MultiSeries[0].Data.([]opts.ScatterData)
	assert.Contains(t, points[1].Name, "Error: +0.50", "over-prediction carries a plus sign")
}

func TestQQResiduals_SymmetricResiduals(t *testing.T) {
	df, err := frame.New(
		frame.NumericColumn("x", []float64{1, 2, 3}),
		frame.NumericColumn("y", []float64{1, 4, 7}),
	)
	require.NoError(t, err)

	// Residuals are -1, 0, 1: theoretical quantiles must mirror around zero.
	sc, err := QQResiduals(scaleModel{feature: "x", scale: 2}, df, []string{"x"}, "y")
	require.NoError(t, err)
	require.Len(t, sc.MultiSeries, 2)
	assert.Equal(t, "Q-Q Points", sc.MultiSeries[0].Name)

	points := sc.MultiSeries[0].Data.([]opts.ScatterData)
	require.Len(t, points, 3)
	theo := make([]float64, 3)
	samp := make([]float64, 3)
	for i, p := range points {
		v := p.Value.([]interface{})
		theo[i] = v[0].(float64)
		samp[i] = v[1].(float64)
	}
	assert.InDelta(t, 0, theo[1], 1e-12)
	assert.InDelta(t, -theo[2], theo[0], 1e-12)
	assert.Greater(t, theo[2], 0.0)
	assert.Equal(t, []float64{-1, 0, 1}, samp)
}

func TestFillibenMedians(t *testing.T) {
	n := 5
	prev := 0.0
	for i := 0; i < n; i++ {
		m := fillibenMedian(i, n)
		assert.Greater(t, m, prev, "medians must increase")
		assert.Less(t, m, 1.0)
		prev = m
	}
	assert.InDelta(t, 1, fillibenMedian(0, n)+fillibenMedian(n-1, n), 1e-12, "tails are complements")
	assert.Equal(t, 0.5, fillibenMedian(0, 1))
}

func TestPredictionTimeSeries_SortsByID(t *testing.T) {
	line, err := PredictionTimeSeries(scaleModel{feature: "x", scale: 2}, diagFrame(t), []string{"x"}, "y", "unit_id")
	require.NoError(t, err)
	require.Len(t, line.MultiSeries, 2)
	assert.Equal(t, "Actual", line.MultiSeries[0].Name)
	assert.Equal(t, "Predicted", line.MultiSeries[1].Name)

	line.Validate()
	xs, ok := line.XAxisList[0].Data.([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"U-01", "U-02", "U-03", "U-04"}, xs)

	actual := line.MultiSeries[0].Data.([]opts.LineData)
	require.Len(t, actual, 4)
	// U-01 is the fixture's second row: x=2, y=3.5.
	assert.Equal(t, 3.5, actual[0].Value)
	assert.Contains(t, actual[0].Name, "unit_id: U-01")
	assert.Contains(t, actual[0].Name, "x: 2")
	assert.Contains(t, actual[0].Name, "Predicted: 4.00")
}

func TestPredictionTimeSeries_MissingID(t *testing.T) {
	_, err := PredictionTimeSeries(scaleModel{feature: "x", scale: 2}, diagFrame(t), []string{"x"}, "y", "nope")
	assert.True(t, frame.IsColumnNotFound(err))
}
