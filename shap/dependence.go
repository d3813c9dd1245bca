package shap

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// viridis approximates the continuous scale the dependence plot colors by.
var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// DependenceChart scatters a feature's raw values against its own
// attributions, colored by a second feature on a continuous scale. An empty
// colorFeature auto-picks the companion whose raw values correlate most
// strongly with the plotted attributions, falling back to the feature itself
// when no other candidate qualifies.
func DependenceChart(explainer ports.Explainer, model ports.Regressor, df *frame.Frame, features []string, feature, colorFeature string) (*charts.Scatter, error) {
	att, err := explain(explainer, model, df, features)
	if err != nil {
		return nil, err
	}
	col := -1
	for j, feat := range att.Features {
		if feat == feature {
			col = j
			break
		}
	}
	if col < 0 {
		return nil, frame.NewColumnNotFoundError(feature)
	}

	xs, err := df.Numeric(feature)
	if err != nil {
		return nil, err
	}
	phis := make([]float64, att.Rows())
	for i := range phis {
		phis[i] = att.Values[i][col]
	}

	if colorFeature == "" {
		colorFeature = pickColorFeature(att, df, feature, phis)
	}
	colorVals, err := df.Numeric(colorFeature)
	if err != nil {
		return nil, err
	}

	items := make([]opts.ScatterData, len(xs))
	for i := range xs {
		items[i] = opts.ScatterData{
			Name:       fmt.Sprintf("%s: %g<br/>SHAP: %.3f<br/>%s: %g", feature, xs[i], phis[i], colorFeature, colorVals[i]),
			Value:      []interface{}{xs[i], phis[i], colorVals[i]},
			SymbolSize: 8,
		}
	}

	lo, _ := stats.Min(colorVals)
	hi, _ := stats.Max(colorVals)

	scatter := charts.NewScatter()
	globals := chartstyle.Base(
		fmt.Sprintf("SHAP Dependence Plot for %s", feature),
		fmt.Sprintf("colored by %s", colorFeature),
	)
	globals = append(globals, chartstyle.ValueAxes(feature, fmt.Sprintf("SHAP value for %s", feature))...)
	globals = append(globals, chartstyle.NameTooltip())
	globals = append(globals, charts.WithVisualMapOpts(opts.VisualMap{
		Calculable: opts.Bool(true),
		Min:        float32(lo),
		Max:        float32(hi),
		InRange:    &opts.VisualMapInRange{Color: viridis},
	}))
	scatter.SetGlobalOptions(globals...)
	scatter.AddSeries(feature, items)
	return scatter, nil
}

// pickColorFeature returns the companion feature whose raw values track the
// plotted attributions most closely by absolute Pearson correlation.
// Constant companions (NaN correlation) never qualify.
func pickColorFeature(att *ports.Attribution, df *frame.Frame, feature string, phis []float64) string {
	best := feature
	bestCorr := -1.0
	for _, cand := range att.Features {
		if cand == feature {
			continue
		}
		vals, err := df.Numeric(cand)
		if err != nil {
			continue
		}
		c := math.Abs(stat.Correlation(vals, phis, nil))
		if math.IsNaN(c) || c <= bestCorr {
			continue
		}
		bestCorr = c
		best = cand
	}
	return best
}
