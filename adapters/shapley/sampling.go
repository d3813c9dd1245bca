// Package shapley estimates additive feature attributions for any
// ports.Regressor by permutation sampling: for each explained row, random
// feature orderings are walked from a background row toward the explained
// row and the prediction deltas are averaged. The baseline is the mean
// prediction over the same background draws, which makes the additivity
// contract baseline + Σφ = prediction hold exactly for a deterministic
// model. Results are deterministic for a fixed seed.
package shapley

import (
	"fmt"
	"math/rand"

	"regviz/frame"
	"regviz/ports"
)

// DefaultSamples is the permutation count used when none is configured.
const DefaultSamples = 32

// Explainer is a sampling explainer. The zero value is not usable; build it
// with New.
type Explainer struct {
	samples int
	seed    int64
}

// New configures a sampling explainer. samples <= 0 selects DefaultSamples.
func New(samples int, seed int64) *Explainer {
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &Explainer{samples: samples, seed: seed}
}

// Explain implements ports.Explainer. Every column of the feature frame is
// treated as a feature; the frame doubles as the background distribution.
func (e *Explainer) Explain(model ports.Regressor, features *frame.Frame) (*ports.Attribution, error) {
	names := features.Columns()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: feature frame has no columns", frame.ErrColumnNotFound)
	}
	rows, err := features.Matrix(names...)
	if err != nil {
		return nil, err
	}
	n, p := len(rows), len(names)
	if n == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}

	rng := rand.New(rand.NewSource(e.seed))
	attr := &ports.Attribution{
		Features:  append([]string(nil), names...),
		Baselines: make([]float64, n),
		Values:    make([][]float64, n),
	}

	stride := p + 1
	for i := range rows {
		hybrids := make([][]float64, 0, e.samples*stride)
		perms := make([][]int, e.samples)
		for r := 0; r < e.samples; r++ {
			background := rows[rng.Intn(n)]
			perm := rng.Perm(p)
			perms[r] = perm

			current := append([]float64(nil), background...)
			hybrids = append(hybrids, append([]float64(nil), current...))
			for _, j := range perm {
				current[j] = rows[i][j]
				hybrids = append(hybrids, append([]float64(nil), current...))
			}
		}

		preds, err := e.predictRows(model, names, hybrids)
		if err != nil {
			return nil, err
		}

		var baseline float64
		phi := make([]float64, p)
		for r := 0; r < e.samples; r++ {
			offset := r * stride
			baseline += preds[offset]
			for step, j := range perms[r] {
				phi[j] += preds[offset+step+1] - preds[offset+step]
			}
		}
		scale := float64(e.samples)
		attr.Baselines[i] = baseline / scale
		for j := range phi {
			phi[j] /= scale
		}
		attr.Values[i] = phi
	}
	return attr, nil
}

// predictRows scores a batch of synthetic rows through the model.
func (e *Explainer) predictRows(model ports.Regressor, names []string, rows [][]float64) ([]float64, error) {
	cols := make([]frame.Column, len(names))
	buf := make([]float64, len(rows))
	for j, name := range names {
		for i := range rows {
			buf[i] = rows[i][j]
		}
		cols[j] = frame.NumericColumn(name, buf)
	}
	hybrid, err := frame.New(cols...)
	if err != nil {
		return nil, err
	}
	preds, err := model.Predict(hybrid)
	if err != nil {
		return nil, err
	}
	if len(preds) != len(rows) {
		return nil, fmt.Errorf("model returned %d predictions for %d rows", len(preds), len(rows))
	}
	return preds, nil
}
