package linear

import (
	"fmt"

	"regviz/frame"
	"regviz/ports"
)

// Explainer produces exact attributions for a fitted linear model:
// φⱼ = βⱼ(xⱼ − x̄ⱼ) against the baseline ŷ(x̄), so the additivity contract
// baseline + Σφ = prediction holds to floating point exactly.
type Explainer struct{}

// Explain implements ports.Explainer. It only accepts *linear.Model.
func (Explainer) Explain(model ports.Regressor, features *frame.Frame) (*ports.Attribution, error) {
	m, ok := model.(*Model)
	if !ok {
		return nil, fmt.Errorf("%w: need *linear.Model, got %T", ports.ErrModelUnsupported, model)
	}
	rows, err := features.Matrix(m.features...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrFeatureMismatch, err)
	}

	baseline := m.intercept
	for j, mean := range m.means {
		baseline += m.coeffs[j] * mean
	}

	attr := &ports.Attribution{
		Features:  m.Features(),
		Baselines: make([]float64, len(rows)),
		Values:    make([][]float64, len(rows)),
	}
	for i, row := range rows {
		attr.Baselines[i] = baseline
		values := make([]float64, len(m.features))
		for j, v := range row {
			values[j] = m.coeffs[j] * (v - m.means[j])
		}
		attr.Values[i] = values
	}
	return attr, nil
}
