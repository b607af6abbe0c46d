// Package theme holds the fixed set of figure templates a user can pick from
// the dashboard dropdown, and the styling each one maps to.
package theme

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ID names a figure template.
type ID string

const (
	Plotly       ID = "plotly"
	GGPlot2      ID = "ggplot2"
	Seaborn      ID = "seaborn"
	SimpleWhite  ID = "simple_white"
	PlotlyWhite  ID = "plotly_white"
	PlotlyDark   ID = "plotly_dark"
	Presentation ID = "presentation"
	XGridOff     ID = "xgridoff"
	YGridOff     ID = "ygridoff"
	GridOn       ID = "gridon"
	None         ID = "none"
)

// Default is the template selected when the page first loads.
const Default = Plotly

var ErrUnknownTheme = errors.New("unknown figure template")

// all keeps dropdown order.
var all = []ID{
	Plotly,
	GGPlot2,
	Seaborn,
	SimpleWhite,
	PlotlyWhite,
	PlotlyDark,
	Presentation,
	XGridOff,
	YGridOff,
	GridOn,
	None,
}

// Style is how a template is drawn by the chart layer.
type Style struct {
	ECharts    string
	Background string
	// Plain leaves axis grid lines at the chart library defaults.
	Plain bool
	XGrid bool
	YGrid bool
	// FontScale enlarges titles; 1 means unchanged.
	FontScale float64
}

var styles = map[ID]Style{
	Plotly:       {ECharts: types.ThemeWalden, Background: "#E5ECF6", XGrid: true, YGrid: true, FontScale: 1},
	GGPlot2:      {ECharts: types.ThemeVintage, Background: "#EBEBEB", XGrid: true, YGrid: true, FontScale: 1},
	Seaborn:      {ECharts: types.ThemeWesteros, Background: "#EAEAF2", XGrid: true, YGrid: true, FontScale: 1},
	SimpleWhite:  {ECharts: "white", Background: "#FFFFFF", FontScale: 1},
	PlotlyWhite:  {ECharts: types.ThemeWalden, Background: "#FFFFFF", XGrid: true, YGrid: true, FontScale: 1},
	PlotlyDark:   {ECharts: "dark", Background: "#111111", XGrid: true, YGrid: true, FontScale: 1},
	Presentation: {ECharts: types.ThemeMacarons, Background: "#FFFFFF", XGrid: true, YGrid: true, FontScale: 1.5},
	XGridOff:     {ECharts: types.ThemeWalden, Background: "#E5ECF6", XGrid: false, YGrid: true, FontScale: 1},
	YGridOff:     {ECharts: types.ThemeWalden, Background: "#E5ECF6", XGrid: true, YGrid: false, FontScale: 1},
	GridOn:       {ECharts: types.ThemeWalden, Background: "#FFFFFF", XGrid: true, YGrid: true, FontScale: 1},
	None:         {Plain: true, FontScale: 1},
}

// All returns the templates in dropdown order.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Names returns All as plain strings.
func Names() []string {
	out := make([]string, len(all))
	for i, id := range all {
		out[i] = string(id)
	}
	return out
}

// Parse validates a template name. An empty name selects Default.
func Parse(name string) (ID, error) {
	if name == "" {
		return Default, nil
	}
	id := ID(name)
	if _, ok := styles[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return id, nil
}

// StyleOf returns the styling for id. Unknown ids get the plain style.
func StyleOf(id ID) Style {
	if s, ok := styles[id]; ok {
		return s
	}
	return styles[None]
}

func (id ID) String() string { return string(id) }
