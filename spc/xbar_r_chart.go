package spc

import (
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// XBarRChart renders the two-panel X-bar / R chart for measurements in
// fixed-size subgroups formed by row order. Only complete subgroups are
// charted; a trailing remainder is dropped and zero complete subgroups is an
// error. Subgroup sizes outside the tabulated 2-10 range are rejected before
// any data is read. Limits: X̿ ± A2·R̄ and D4·R̄ / D3·R̄.
func XBarRChart(df *frame.Frame, column, idColumn string, subgroupSize int) (*components.Page, error) {
	if _, ok := a2[subgroupSize]; !ok {
		return nil, NewSubgroupSizeError(subgroupSize)
	}
	vals, ids, err := subgroupInput(df, column, idColumn)
	if err != nil {
		return nil, err
	}
	groups, err := CompleteSubgroups(vals, subgroupSize)
	if err != nil {
		return nil, err
	}
	xbars, ranges, xLimits, rLimits, err := XBarRStats(groups)
	if err != nil {
		return nil, err
	}
	xHover, rHover := subgroupHovers(xbars, ranges, ids, idColumn, subgroupSize)

	page := components.NewPage()
	page.PageTitle = "Interactive X-bar and R Control Charts"
	page.AddCharts(
		limitPanel(panelSpec{
			title:      fmt.Sprintf("X-bar Chart (Subgroup Size: %d)", subgroupSize),
			subtitle:   fmt.Sprintf("%s grouped by %s", column, idColumn),
			xTitle:     "Subgroup Index",
			yTitle:     "Subgroup Mean",
			seriesName: "X-bar",
			color:      chartstyle.ColorSeries,
			values:     xbars,
			hover:      xHover,
			limits:     xLimits,
		}),
		limitPanel(panelSpec{
			title:      fmt.Sprintf("R Chart (Subgroup Size: %d)", subgroupSize),
			xTitle:     "Subgroup Index",
			yTitle:     "Range",
			seriesName: "R",
			color:      chartstyle.ColorAccent,
			values:     ranges,
			hover:      rHover,
			limits:     rLimits,
		}),
	)
	return page, nil
}

// subgroupInput pulls the measurement column plus ids with missing values
// dropped in lockstep.
func subgroupInput(df *frame.Frame, column, idColumn string) ([]float64, []string, error) {
	raw, err := df.Numeric(column)
	if err != nil {
		return nil, nil, err
	}
	ids, err := df.Labels(idColumn)
	if err != nil {
		return nil, nil, err
	}
	vals, kept := dropMissing(raw, ids)
	return vals, kept, nil
}

// subgroupHovers builds per-subgroup hover text naming every id the subgroup
// contains.
func subgroupHovers(means, spreads []float64, ids []string, idColumn string, size int) (meanHover, spreadHover []string) {
	meanHover = make([]string, len(means))
	spreadHover = make([]string, len(spreads))
	for g := range means {
		members := strings.Join(ids[g*size:(g+1)*size], ", ")
		meanHover[g] = fmt.Sprintf("Subgroup %d<br/>Value: %.2f<br/>%s: %s", g, means[g], idColumn, members)
		spreadHover[g] = fmt.Sprintf("Subgroup %d<br/>Value: %.2f<br/>%s: %s", g, spreads[g], idColumn, members)
	}
	return meanHover, spreadHover
}
