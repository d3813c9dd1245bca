package ports

import (
	"fmt"

	"regviz/frame"
)

// Attribution is the output contract every explainer must satisfy: for each
// explained row, a baseline plus one additive value per feature such that
// baseline + sum(values) equals the model's prediction for that row.
type Attribution struct {
	Features  []string    // feature order shared by every row
	Baselines []float64   // one baseline per row
	Values    [][]float64 // [row][feature] additive contributions
}

// Prediction reconstructs the model output for one explained row.
func (a *Attribution) Prediction(row int) float64 {
	sum := a.Baselines[row]
	for _, v := range a.Values[row] {
		sum += v
	}
	return sum
}

// Rows returns the number of explained rows.
func (a *Attribution) Rows() int { return len(a.Values) }

// Validate checks the internal shape of the attribution.
func (a *Attribution) Validate() error {
	if len(a.Values) != len(a.Baselines) {
		return fmt.Errorf("attribution shape: %d value rows, %d baselines", len(a.Values), len(a.Baselines))
	}
	for i, row := range a.Values {
		if len(row) != len(a.Features) {
			return fmt.Errorf("attribution shape: row %d has %d values, expected %d", i, len(row), len(a.Features))
		}
	}
	return nil
}

// Explainer produces additive per-feature attributions for every row of the
// feature frame. Chart functions delegate all attribution math here.
type Explainer interface {
	Explain(model Regressor, features *frame.Frame) (*Attribution, error)
}
