package gbdt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"regviz/ports"
)

// Metadata configuration errors.
var (
	ErrFeatureNames  = errors.New("metadata missing feature names")
	ErrMetadataShape = errors.New("metadata shape mismatch")
)

// Metadata is the training-time sidecar exported next to a LightGBM model
// file. Feature names are required: the model file itself stores only column
// indices. Importance and interaction sections are optional and only gate
// the introspection accessors, never Predict.
type Metadata struct {
	Target       string               `json:"target,omitempty"`
	Features     []string             `json:"features"`
	Importance   []ports.FeatureScore `json:"importance,omitempty"`
	Interactions []ports.PairScore    `json:"interactions,omitempty"`
}

// MetadataPath returns the sidecar path conventionally paired with a model
// file.
func MetadataPath(modelPath string) string {
	return modelPath + ".meta.json"
}

func readMetadata(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read model metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse model metadata: %w", err)
	}
	return meta, nil
}

// validateMetadata checks the sidecar against the loaded ensemble.
// modelFeatures is the highest feature count the model scores with; the
// metadata must name at least that many columns, and the optional sections
// may only reference named features.
func validateMetadata(meta Metadata, modelFeatures int) error {
	if len(meta.Features) == 0 {
		return ErrFeatureNames
	}
	if len(meta.Features) < modelFeatures {
		return fmt.Errorf("%w: metadata lists %d features, model needs %d",
			ErrMetadataShape, len(meta.Features), modelFeatures)
	}
	known := make(map[string]bool, len(meta.Features))
	for _, name := range meta.Features {
		known[name] = true
	}
	for _, fs := range meta.Importance {
		if !known[fs.Feature] {
			return fmt.Errorf("%w: importance names unknown feature %q", ErrMetadataShape, fs.Feature)
		}
	}
	for _, ps := range meta.Interactions {
		if !known[ps.FeatureA] || !known[ps.FeatureB] {
			return fmt.Errorf("%w: interaction names unknown pair %q, %q",
				ErrMetadataShape, ps.FeatureA, ps.FeatureB)
		}
	}
	return nil
}
