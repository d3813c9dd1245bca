package diag

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat/distuv"

	"regviz/frame"
	"regviz/internal/chartstyle"
	"regviz/ports"
)

// QQResiduals draws a normal quantile-quantile plot of the signed residuals:
// the sorted residuals against standard normal quantiles taken at Filliben's
// order statistic medians, plus a 45 degree reference line.
func QQResiduals(model ports.Regressor, df *frame.Frame, features []string, target string) (*charts.Scatter, error) {
	_, actual, predicted, err := predictions(model, df, features, target)
	if err != nil {
		return nil, err
	}

	sample := make([]float64, len(actual))
	for i := range actual {
		sample[i] = actual[i] - predicted[i]
	}
	sort.Float64s(sample)

	n := len(sample)
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	theoretical := make([]float64, n)
	hover := make([]string, n)
	for i := range theoretical {
		theoretical[i] = norm.Quantile(fillibenMedian(i, n))
		hover[i] = fmt.Sprintf("Theoretical: %.2f<br/>Sample: %.2f", theoretical[i], sample[i])
	}

	scatter := charts.NewScatter()
	globals := chartstyle.Base("Q-Q Plot of Residuals", "")
	globals = append(globals, chartstyle.ValueAxes("Theoretical Quantiles", "Sample Quantiles (Residuals)")...)
	globals = append(globals, chartstyle.NameTooltip())
	scatter.SetGlobalOptions(globals...)
	scatter.AddSeries("Q-Q Points", chartstyle.ScatterPairs(theoretical, sample, hover, 8),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: chartstyle.ColorSeries}))

	lo := math.Min(theoretical[0], sample[0])
	hi := math.Max(theoretical[n-1], sample[n-1])
	ident := charts.NewLine()
	ident.AddSeries("45° Reference Line", chartstyle.Pairs([]float64{lo, hi}, []float64{lo, hi}),
		chartstyle.GuideLine(chartstyle.ColorMuted, "dashed")...)
	scatter.Overlap(ident)
	return scatter, nil
}

// fillibenMedian returns the i-th of n uniform order statistic medians
// (0-indexed), Filliben's estimate.
func fillibenMedian(i, n int) float64 {
	tail := math.Pow(0.5, 1/float64(n))
	switch i {
	case n - 1:
		return tail
	case 0:
		return 1 - tail
	default:
		return (float64(i+1) - 0.3175) / (float64(n) + 0.365)
	}
}
