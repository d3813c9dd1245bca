// Package shap renders additive attribution charts: decision paths,
// waterfall and force cascades, the per-feature summary strip, and the
// dependence scatter. All attribution math is delegated to a ports.Explainer;
// the charts only arrange its output.
package shap

import (
	"fmt"
	"math"
	"sort"

	"regviz/frame"
	"regviz/ports"
)

// DefaultMaxDisplay caps the summary chart's feature count when the caller
// does not.
const DefaultMaxDisplay = 20

// explain scores the feature columns and validates the attribution shape
// against the frame.
func explain(explainer ports.Explainer, model ports.Regressor, df *frame.Frame, features []string) (*ports.Attribution, error) {
	if err := df.RequireRows(1); err != nil {
		return nil, err
	}
	inputs, err := df.Select(features...)
	if err != nil {
		return nil, err
	}
	att, err := explainer.Explain(model, inputs)
	if err != nil {
		return nil, err
	}
	if err := att.Validate(); err != nil {
		return nil, err
	}
	if att.Rows() != df.Rows() {
		return nil, fmt.Errorf("attribution shape: %d rows explained, expected %d", att.Rows(), df.Rows())
	}
	return att, nil
}

func checkRow(df *frame.Frame, row int) error {
	if row < 0 || row >= df.Rows() {
		return NewRowIndexError(row, df.Rows())
	}
	return nil
}

// contribution is one feature's attribution for a single explained row,
// paired with the row's raw feature value.
type contribution struct {
	feature string
	shap    float64
	value   float64
}

// rowContributions extracts one row's contributions sorted by descending
// absolute attribution, the order the cascade charts walk in.
func rowContributions(att *ports.Attribution, df *frame.Frame, row int) ([]contribution, error) {
	out := make([]contribution, len(att.Features))
	for j, feat := range att.Features {
		col, err := df.Numeric(feat)
		if err != nil {
			return nil, err
		}
		out[j] = contribution{feature: feat, shap: att.Values[row][j], value: col[row]}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].shap) > math.Abs(out[b].shap)
	})
	return out, nil
}
