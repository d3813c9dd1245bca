// Package linear fits and wraps an ordinary least squares model so the chart
// packages have a self-contained Regressor. The model also reports feature
// importance (|coefficient| scaled by the feature's spread) and ships an
// exact explainer whose attributions are additive by construction.
package linear

import (
	"errors"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"regviz/frame"
	"regviz/ports"
)

// ErrNoFeatures rejects a fit with an empty feature list.
var ErrNoFeatures = errors.New("at least one feature required")

// Model is an ordinary least squares fit over named feature columns.
type Model struct {
	features  []string
	coeffs    []float64
	intercept float64
	means     []float64 // training means, the explainer's reference point
	scales    []float64 // training sample standard deviations
}

// Fit estimates intercept and coefficients by least squares. Rows missing a
// feature or the target are dropped before fitting.
func Fit(df *frame.Frame, features []string, target string) (*Model, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	cols := make([]string, 0, len(features)+1)
	cols = append(cols, features...)
	cols = append(cols, target)
	clean, err := df.DropNaN(cols...)
	if err != nil {
		return nil, err
	}
	y, err := clean.Numeric(target)
	if err != nil {
		return nil, err
	}
	rows, err := clean.Matrix(features...)
	if err != nil {
		return nil, err
	}
	n, p := len(y), len(features)
	if n < p+1 {
		return nil, frame.NewInsufficientRowsError(p+1, n)
	}

	design := mat.NewDense(n, p+1, nil)
	for i, row := range rows {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	var beta mat.Dense
	if err := beta.Solve(design, mat.NewDense(n, 1, y)); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}

	m := &Model{
		features:  append([]string(nil), features...),
		coeffs:    make([]float64, p),
		intercept: beta.At(0, 0),
		means:     make([]float64, p),
		scales:    make([]float64, p),
	}
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		m.coeffs[j] = beta.At(j+1, 0)
		for i := range rows {
			col[i] = rows[i][j]
		}
		m.means[j], _ = stats.Mean(col)
		m.scales[j], _ = stats.StandardDeviationSample(col)
	}
	return m, nil
}

// Features returns the feature names in training order.
func (m *Model) Features() []string {
	return append([]string(nil), m.features...)
}

// Coefficients returns the fitted coefficient per feature.
func (m *Model) Coefficients() map[string]float64 {
	out := make(map[string]float64, len(m.features))
	for j, name := range m.features {
		out[name] = m.coeffs[j]
	}
	return out
}

// Intercept returns the fitted intercept.
func (m *Model) Intercept() float64 { return m.intercept }

// Predict implements ports.Regressor.
func (m *Model) Predict(features *frame.Frame) ([]float64, error) {
	rows, err := features.Matrix(m.features...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrFeatureMismatch, err)
	}
	preds := make([]float64, len(rows))
	for i, row := range rows {
		sum := m.intercept
		for j, v := range row {
			sum += m.coeffs[j] * v
		}
		preds[i] = sum
	}
	return preds, nil
}

// FeatureImportance implements ports.ImportanceProvider: |βⱼ|·σⱼ scaled to
// sum 100 and sorted descending, so coefficients over differently scaled
// features compare fairly.
func (m *Model) FeatureImportance() ([]ports.FeatureScore, error) {
	scores := make([]ports.FeatureScore, len(m.features))
	var total float64
	for j, name := range m.features {
		raw := m.coeffs[j] * m.scales[j]
		if raw < 0 {
			raw = -raw
		}
		scores[j] = ports.FeatureScore{Feature: name, Score: raw}
		total += raw
	}
	if total > 0 {
		for j := range scores {
			scores[j].Score = scores[j].Score / total * 100
		}
	}
	sort.SliceStable(scores, func(a, b int) bool { return scores[a].Score > scores[b].Score })
	return scores, nil
}
