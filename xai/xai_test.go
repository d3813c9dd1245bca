package xai

import (
	"errors"
	"math"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regviz/frame"
	"regviz/ports"
)

type importanceStub struct {
	scores []ports.FeatureScore
	err    error
}

func (s importanceStub) FeatureImportance() ([]ports.FeatureScore, error) {
	return s.scores, s.err
}

type interactionStub struct {
	pairs []ports.PairScore
	err   error
}

func (s interactionStub) FeatureInteraction() ([]ports.PairScore, error) {
	return s.pairs, s.err
}

// planeModel sums coeff*column over its configured columns.
type planeModel struct {
	coeffs map[string]float64
}

func (m planeModel) Predict(df *frame.Frame) ([]float64, error) {
	out := make([]float64, df.Rows())
	for name, c := range m.coeffs {
		vals, err := df.Numeric(name)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			out[i] += c * v
		}
	}
	return out, nil
}

func TestImportanceChart_SortsAndTruncates(t *testing.T) {
	stub := importanceStub{scores: []ports.FeatureScore{
		{Feature: "a", Score: 5},
		{Feature: "b", Score: 20},
		{Feature: "c", Score: 10},
		{Feature: "d", Score: 1},
	}}
	bar, err := ImportanceChart(stub, 3)
	require.NoError(t, err)

	// Validate swings the category data onto the y axis for horizontal bars.
	bar.Validate()
	categories := bar.YAxisList[0].Data.([]string)
	assert.Equal(t, []string{"a", "c", "b"}, categories, "weakest first so the strongest renders on top")

	items := bar.MultiSeries[0].Data.([]opts.BarData)
	require.Len(t, items, 3)
	assert.Equal(t, 5.0, items[0].Value)
	assert.Equal(t, 20.0, items[2].Value)
	assert.Contains(t, items[2].Name, "b: 20.00")
	assert.Equal(t, "Top 3 Feature Importance", bar.Title.Title)
}

func TestImportanceChart_NoImportance(t *testing.T) {
	_, err := ImportanceChart(importanceStub{err: ports.ErrNoImportance}, 0)
	assert.ErrorIs(t, err, ports.ErrNoImportance)

	_, err = ImportanceChart(importanceStub{}, 0)
	assert.ErrorIs(t, err, ports.ErrNoImportance, "empty score list")
}

func TestInteractionChart_Buckets(t *testing.T) {
	stub := interactionStub{pairs: []ports.PairScore{
		{FeatureA: "a", FeatureB: "b", Strength: 10},
		{FeatureA: "a", FeatureB: "c", Strength: 20},
		{FeatureA: "b", FeatureB: "c", Strength: 30},
		{FeatureA: "b", FeatureB: "d", Strength: 40},
		{FeatureA: "c", FeatureB: "d", Strength: 50},
	}}
	// Percentile thresholds over 10..50 land at 15 and 35: one Low, two
	// Medium, two High.
	sc, err := InteractionChart(stub, 0)
	require.NoError(t, err)
	require.Len(t, sc.MultiSeries, 3)

	assert.Equal(t, categoryLow, sc.MultiSeries[0].Name)
	assert.Equal(t, categoryMedium, sc.MultiSeries[1].Name)
	assert.Equal(t, categoryHigh, sc.MultiSeries[2].Name)

	assert.Len(t, sc.MultiSeries[0].Data, 1)
	assert.Len(t, sc.MultiSeries[1].Data, 2)
	assert.Len(t, sc.MultiSeries[2].Data, 2)

	high := sc.MultiSeries[2].Data.([]opts.ScatterData)
	assert.Contains(t, high[0].Name, "Strength: 50.000", "pairs ranked strongest first")
	assert.Greater(t, high[0].SymbolSize, high[1].SymbolSize, "symbol size tracks strength")
}

func TestInteractionChart_FlatStrengths(t *testing.T) {
	stub := interactionStub{pairs: []ports.PairScore{
		{FeatureA: "a", FeatureB: "b", Strength: 5},
		{FeatureA: "a", FeatureB: "c", Strength: 5},
	}}
	sc, err := InteractionChart(stub, 0)
	require.NoError(t, err)
	require.Len(t, sc.MultiSeries, 1, "tied strengths all land in the low bucket")
	assert.Equal(t, categoryLow, sc.MultiSeries[0].Name)
}

func TestInteractionChart_NoInteraction(t *testing.T) {
	_, err := InteractionChart(interactionStub{err: ports.ErrNoInteraction}, 0)
	assert.ErrorIs(t, err, ports.ErrNoInteraction)

	_, err = InteractionChart(interactionStub{}, 0)
	assert.ErrorIs(t, err, ports.ErrNoInteraction)
}

func pdpFrame(t *testing.T) *frame.Frame {
	t.Helper()
	df, err := frame.New(
		frame.NumericColumn("x", []float64{1, 2, 3, 4, 5, 10}),
		frame.NumericColumn("z", []float64{2, 2, 2, 2, 2, 2}),
	)
	require.NoError(t, err)
	return df
}

func TestPartialDependenceChart_ExactEndpoints(t *testing.T) {
	model := planeModel{coeffs: map[string]float64{"x": 3, "z": 1}}
	line, err := PartialDependenceChart(model, pdpFrame(t), []string{"x"}, 4)
	require.NoError(t, err)
	require.Len(t, line.MultiSeries, 1)
	assert.Equal(t, "x", line.MultiSeries[0].Name)

	data := line.MultiSeries[0].Data.([]opts.LineData)
	require.Len(t, data, 4)
	wantX := []float64{1, 4, 7, 10}
	for i, item := range data {
		v := item.Value.([]interface{})
		assert.InDelta(t, wantX[i], v[0].(float64), 1e-12, "grid point %d", i)
		// Mean prediction at grid g is 3g + mean(z) = 3g + 2.
		assert.InDelta(t, 3*wantX[i]+2, v[1].(float64), 1e-9, "curve point %d", i)
	}
	v := data[3].Value.([]interface{})
	assert.Equal(t, 10.0, v[0], "grid must end exactly at the observed max")
}

func TestPartialDependenceChart_DefaultGridDensity(t *testing.T) {
	model := planeModel{coeffs: map[string]float64{"x": 1}}
	line, err := PartialDependenceChart(model, pdpFrame(t), []string{"x"}, 0)
	require.NoError(t, err)
	data := line.MultiSeries[0].Data.([]opts.LineData)
	assert.Len(t, data, 10, "six rows fall in the smallest density tier")
}

func TestPartialDependenceChart_ConstantFeature(t *testing.T) {
	model := planeModel{coeffs: map[string]float64{"x": 1, "z": 1}}
	line, err := PartialDependenceChart(model, pdpFrame(t), []string{"z"}, 5)
	require.NoError(t, err)
	data := line.MultiSeries[0].Data.([]opts.LineData)
	assert.Len(t, data, 1, "constant column collapses to one grid point")
}

func TestPartialDependenceChart_DropsMissingRows(t *testing.T) {
	df, err := frame.New(
		frame.NumericColumn("x", []float64{1, math.NaN(), 10}),
		frame.NumericColumn("z", []float64{2, 2, math.NaN()}),
	)
	require.NoError(t, err)

	model := planeModel{coeffs: map[string]float64{"x": 3, "z": 1}}
	line, err := PartialDependenceChart(model, df, []string{"x", "z"}, 2)
	require.NoError(t, err)
	require.Len(t, line.MultiSeries, 2)

	// Only the first row is complete, so each sweep collapses to one point.
	data := line.MultiSeries[0].Data.([]opts.LineData)
	require.Len(t, data, 1)
	v := data[0].Value.([]interface{})
	assert.Equal(t, 1.0, v[0])
	assert.InDelta(t, 5.0, v[1].(float64), 1e-12)
}

func TestPartialDependenceChart_InputValidation(t *testing.T) {
	model := planeModel{coeffs: map[string]float64{"x": 1}}

	_, err := PartialDependenceChart(model, pdpFrame(t), nil, 0)
	assert.ErrorIs(t, err, ErrNoFeatures)

	_, err = PartialDependenceChart(model, pdpFrame(t), []string{"nope"}, 0)
	assert.True(t, frame.IsColumnNotFound(err))

	_, err = PartialDependenceChart(failingRegressor{}, pdpFrame(t), []string{"x"}, 3)
	assert.ErrorContains(t, err, "scorer offline")
}

type failingRegressor struct{}

func (failingRegressor) Predict(*frame.Frame) ([]float64, error) {
	return nil, errors.New("scorer offline")
}

func TestOptimalGridPoints(t *testing.T) {
	cases := []struct {
		rows, want int
	}{
		{199, 10}, {200, 15}, {499, 15}, {500, 20}, {999, 20}, {1000, 25}, {4999, 25}, {5000, 30},
	}
	for _, tc := range cases {
		if got := optimalGridPoints(tc.rows); got != tc.want {
			t.Errorf("optimalGridPoints(%d): got %d, want %d", tc.rows, got, tc.want)
		}
	}
}
