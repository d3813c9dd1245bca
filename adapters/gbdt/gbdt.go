// Package gbdt plugs pre-trained LightGBM models into the chart catalogue.
// Inference runs through dmitryikh/leaves on the text model file; feature
// names plus the model-native importance and interaction scores come from a
// metadata JSON exported at training time.
package gbdt

import (
	"fmt"
	"log"

	"github.com/dmitryikh/leaves"

	"regviz/frame"
	"regviz/ports"
)

// Model wraps a loaded LightGBM ensemble and its training-time metadata.
type Model struct {
	ensemble *leaves.Ensemble
	meta     Metadata
}

// Load reads a LightGBM text model plus the metadata sidecar at
// MetadataPath(modelPath).
func Load(modelPath string) (*Model, error) {
	return LoadWithMetadata(modelPath, MetadataPath(modelPath))
}

// LoadWithMetadata reads a LightGBM text model and an explicit metadata
// path. The metadata must name the model's features; its importance and
// interaction sections may be absent.
func LoadWithMetadata(modelPath, metaPath string) (*Model, error) {
	log.Printf("[gbdt] loading LightGBM model: %s", modelPath)
	ensemble, err := leaves.LGEnsembleFromFile(modelPath, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load LightGBM model: %w", err)
	}

	meta, err := readMetadata(metaPath)
	if err != nil {
		return nil, err
	}
	if err := validateMetadata(meta, ensemble.NFeatures()); err != nil {
		return nil, err
	}

	log.Printf("[gbdt] model loaded (%d trees, %d features, target %q)",
		ensemble.NEstimators(), ensemble.NFeatures(), meta.Target)
	return &Model{ensemble: ensemble, meta: meta}, nil
}

// Features returns the model's input columns in training order.
func (m *Model) Features() []string {
	out := make([]string, len(m.meta.Features))
	copy(out, m.meta.Features)
	return out
}

// Target returns the trained response column, when the metadata records it.
func (m *Model) Target() string { return m.meta.Target }

// Predict scores every row of the feature frame. Columns are pulled by the
// metadata's feature names, so the frame may carry extra columns in any
// order.
func (m *Model) Predict(features *frame.Frame) ([]float64, error) {
	if groups := m.ensemble.NOutputGroups(); groups != 1 {
		return nil, fmt.Errorf("%w: model has %d output groups, regression needs 1",
			ports.ErrModelUnsupported, groups)
	}
	rows, err := features.Matrix(m.meta.Features...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}

	cols := len(m.meta.Features)
	flat := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	preds := make([]float64, len(rows))
	if err := m.ensemble.PredictDense(flat, len(rows), cols, preds, 0, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrFeatureMismatch, err)
	}
	return preds, nil
}

// FeatureImportance returns the importance scores recorded at training time.
func (m *Model) FeatureImportance() ([]ports.FeatureScore, error) {
	if len(m.meta.Importance) == 0 {
		return nil, fmt.Errorf("%w: metadata has no importance section", ports.ErrNoImportance)
	}
	out := make([]ports.FeatureScore, len(m.meta.Importance))
	copy(out, m.meta.Importance)
	return out, nil
}

// FeatureInteraction returns the pairwise interaction strengths recorded at
// training time.
func (m *Model) FeatureInteraction() ([]ports.PairScore, error) {
	if len(m.meta.Interactions) == 0 {
		return nil, fmt.Errorf("%w: metadata has no interaction section", ports.ErrNoInteraction)
	}
	out := make([]ports.PairScore, len(m.meta.Interactions))
	copy(out, m.meta.Interactions)
	return out, nil
}
