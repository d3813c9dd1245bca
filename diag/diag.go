// Package diag renders residual and prediction diagnostics for a fitted
// regression model: error magnitude (ECDF), residual structure against the
// predictions, calibration against actuals, residual normality, and the
// prediction series over an observation id.
//
// Every function scores the dataset with the supplied model. Rows missing a
// feature or the target value are dropped, and column lookups and row
// minimums are validated before prediction so bad inputs fail fast.
package diag

import (
	"fmt"

	"regviz/frame"
	"regviz/ports"
)

// predictions scores the frame's feature columns with the model and returns
// the scored rows with the paired actual and predicted values for the target
// column. Rows missing a feature or the target are dropped first.
func predictions(model ports.Regressor, df *frame.Frame, features []string, target string) (*frame.Frame, []float64, []float64, error) {
	cols := make([]string, 0, len(features)+1)
	cols = append(cols, features...)
	cols = append(cols, target)
	clean, err := df.DropNaN(cols...)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := clean.RequireRows(1); err != nil {
		return nil, nil, nil, err
	}
	actual, err := clean.Numeric(target)
	if err != nil {
		return nil, nil, nil, err
	}
	inputs, err := clean.Select(features...)
	if err != nil {
		return nil, nil, nil, err
	}
	predicted, err := model.Predict(inputs)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(predicted) != len(actual) {
		return nil, nil, nil, fmt.Errorf("%w: model returned %d predictions for %d rows", ports.ErrFeatureMismatch, len(predicted), len(actual))
	}
	return clean, actual, predicted, nil
}
