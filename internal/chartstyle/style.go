// Package chartstyle centralizes the layout options and colors shared by
// every chart package so the whole catalogue renders with one visual voice.
package chartstyle

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Colors used across the catalogue. Control charts draw observations in the
// series color, center lines green, and limits plus violations in red.
const (
	ColorSeries   = "#1f77b4"
	ColorAccent   = "#ff7f0e"
	ColorCenter   = "#2ca02c"
	ColorLimit    = "#d62728"
	ColorMuted    = "#7f7f7f"
	ColorPositive = "#2ca02c"
	ColorNegative = "#d62728"
)

// Palette is the default categorical cycle for multi-series charts.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// PaletteColor cycles through Palette.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// Base returns the global options common to every chart: title, item-level
// tooltips, a bottom legend, and a fixed canvas.
func Base(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "920px",
			Height:    "540px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Bottom: "0",
		}),
	}
}

// ValueAxes names both axes and marks them continuous, letting the y range
// follow the data instead of pinning zero.
func ValueAxes(xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value", Scale: opts.Bool(true)}),
	}
}

// CategoryAxes names both axes with a categorical x.
func CategoryAxes(xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value", Scale: opts.Bool(true)}),
	}
}

// NameTooltip switches hover text to each data item's name, which charts use
// to carry multi-line per-point detail.
func NameTooltip() charts.GlobalOpts {
	return charts.WithTooltipOpts(opts.Tooltip{
		Show:      opts.Bool(true),
		Trigger:   "item",
		Formatter: "{b}",
	})
}
