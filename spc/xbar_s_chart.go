package spc

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/components"

	"regviz/frame"
	"regviz/internal/chartstyle"
)

// XBarSChart renders the two-panel X-bar / S chart: subgroup means against
// X̿ ± A3·S̄ and subgroup sample standard deviations against B4·S̄ / B3·S̄.
// Subgrouping follows XBarRChart: complete row-order subgroups only, sizes
// 2-10.
func XBarSChart(df *frame.Frame, column, idColumn string, subgroupSize int) (*components.Page, error) {
	if _, ok := a3[subgroupSize]; !ok {
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
	xbars, sdevs, xLimits, sLimits, err := XBarSStats(groups)
	if err != nil {
		return nil, err
	}
	xHover, sHover := subgroupHovers(xbars, sdevs, ids, idColumn, subgroupSize)

	page := components.NewPage()
	page.PageTitle = "Interactive X-bar and S Control Charts"
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
			title:      fmt.Sprintf("S Chart (Subgroup Size: %d)", subgroupSize),
			xTitle:     "Subgroup Index",
			yTitle:     "Standard Deviation",
			seriesName: "S",
			color:      chartstyle.ColorAccent,
			values:     sdevs,
			hover:      sHover,
			limits:     sLimits,
		}),
	)
	return page, nil
}
