// Package ports defines the capability interfaces chart functions consume.
// Charts depend only on these, never on a concrete model or explainer, so a
// trained model from any source can be plotted as long as an adapter wraps it.
package ports

import (
	"errors"

	"regviz/frame"
)

// Capability errors returned by adapters that cannot honor a request.
var (
	ErrFeatureMismatch  = errors.New("model feature mismatch")
	ErrNoImportance     = errors.New("model exposes no feature importance")
	ErrNoInteraction    = errors.New("model exposes no feature interaction")
	ErrModelUnsupported = errors.New("model type unsupported by explainer")
)

// Regressor is a trained regression model treated as a black box.
// Predict scores every row of the feature frame and must not mutate it.
type Regressor interface {
	Predict(features *frame.Frame) ([]float64, error)
}

// FeatureScore is one entry of a model-native importance ranking.
type FeatureScore struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// PairScore is the model-native interaction strength of a feature pair.
type PairScore struct {
	FeatureA string  `json:"feature_a"`
	FeatureB string  `json:"feature_b"`
	Strength float64 `json:"strength"`
}

// ImportanceProvider is implemented by models that carry their own
// feature-importance scores (gradient boosters, linear models).
type ImportanceProvider interface {
	FeatureImportance() ([]FeatureScore, error)
}

// InteractionProvider is implemented by models that carry pairwise
// interaction strengths.
type InteractionProvider interface {
	FeatureInteraction() ([]PairScore, error)
}
