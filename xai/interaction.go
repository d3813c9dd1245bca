package xai

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"regviz/internal/chartstyle"
	"regviz/ports"
)

// Interaction strength buckets, split at the 33rd and 66th percentiles.
const (
	categoryLow    = "Low (Orange)"
	categoryMedium = "Medium (Green)"
	categoryHigh   = "High (Red)"
)

// InteractionChart scatters the model's pairwise interaction strengths, one
// axis per pair member, symbol size tracking strength. Pairs are sorted
// descending, truncated to topN (default 20 when topN <= 0), and bucketed
// Low/Medium/High at the 33rd and 66th percentile thresholds. When every
// strength ties, the thresholds degenerate to even thirds of a zero-width
// range and everything lands in the low bucket.
func InteractionChart(model ports.InteractionProvider, topN int) (*charts.Scatter, error) {
	pairs, err := model.FeatureInteraction()
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ports.ErrNoInteraction
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	sorted := append([]ports.PairScore(nil), pairs...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Strength > sorted[b].Strength })
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	strengths := make([]float64, len(sorted))
	for i, p := range sorted {
		strengths[i] = p.Strength
	}
	minS, _ := stats.Min(strengths)
	maxS, _ := stats.Max(strengths)
	lowThresh := minS + (maxS-minS)/3
	highThresh := minS + 2*(maxS-minS)/3
	if minS != maxS {
		lowThresh, _ = stats.Percentile(strengths, 33)
		highThresh, _ = stats.Percentile(strengths, 66)
	}

	const minSymbol, maxSymbol = 8, 30
	sizeFor := func(s float64) int {
		if maxS == minS {
			return (minSymbol + maxSymbol) / 2
		}
		return minSymbol + int((s-minS)/(maxS-minS)*float64(maxSymbol-minSymbol))
	}

	var xCats, yCats []string
	seenX := make(map[string]bool)
	seenY := make(map[string]bool)
	buckets := make(map[string][]opts.ScatterData)
	for _, p := range sorted {
		if !seenX[p.FeatureA] {
			seenX[p.FeatureA] = true
			xCats = append(xCats, p.FeatureA)
		}
		if !seenY[p.FeatureB] {
			seenY[p.FeatureB] = true
			yCats = append(yCats, p.FeatureB)
		}
		bucket := categoryLow
		switch {
		case p.Strength > highThresh:
			bucket = categoryHigh
		case p.Strength > lowThresh:
			bucket = categoryMedium
		}
		buckets[bucket] = append(buckets[bucket], opts.ScatterData{
			Name:       fmt.Sprintf("Feature 1: %s<br/>Feature 2: %s<br/>Strength: %.3f", p.FeatureA, p.FeatureB, p.Strength),
			Value:      []interface{}{p.FeatureA, p.FeatureB},
			SymbolSize: sizeFor(p.Strength),
		})
	}

	scatter := charts.NewScatter()
	globals := chartstyle.Base(fmt.Sprintf("Top %d Feature Interaction Strengths", len(sorted)), "")
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yCats}),
		chartstyle.NameTooltip(),
	)
	scatter.SetGlobalOptions(globals...)
	scatter.SetXAxis(xCats)

	for _, series := range []struct {
		name  string
		color string
	}{
		{categoryLow, chartstyle.ColorAccent},
		{categoryMedium, chartstyle.ColorPositive},
		{categoryHigh, chartstyle.ColorLimit},
	} {
		if len(buckets[series.name]) == 0 {
			continue
		}
		scatter.AddSeries(series.name, buckets[series.name],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: series.color}))
	}
	return scatter, nil
}
