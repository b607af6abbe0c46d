// Package figure draws chart specs with go-echarts.
package figure

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/theme"
)

var (
	ErrUnknownSlot     = errors.New("unknown chart slot")
	ErrUnsupportedKind = errors.New("unsupported chart kind")
	ErrUnknownFrame    = errors.New("unknown animation frame")
)

// Chart is the part of a go-echarts chart the dashboard needs.
type Chart interface {
	Render(w io.Writer) error
	RenderSnippet() render.ChartSnippet
	GetAssets() opts.Assets
}

// Figure is one drawn chart.
type Figure struct {
	Spec  models.ChartSpec
	Chart Chart

	// Frames lists the animation frames in order; empty for still charts.
	Frames []string
	Frame  string
}

// Snippet renders the chart's element and script for embedding in a page,
// along with the script assets it needs.
func (f *Figure) Snippet() (render.ChartSnippet, []string) {
	s := f.Chart.RenderSnippet()
	assets := f.Chart.GetAssets()
	return s, append([]string(nil), assets.JSAssets.Values...)
}

type Options struct {
	// Frame selects the animation frame; empty picks the first one.
	Frame string
}

// Drawer resolves specs against the loaded datasets.
type Drawer struct {
	catalog *engine.Catalog
}

func NewDrawer(catalog *engine.Catalog) *Drawer {
	return &Drawer{catalog: catalog}
}

func (d *Drawer) Draw(spec models.ChartSpec, o Options) (*Figure, error) {
	f, err := d.catalog.Frame(spec.Dataset)
	if err != nil {
		return nil, err
	}
	st := theme.StyleOf(theme.ID(spec.Theme))

	fig := &Figure{Spec: spec}
	switch spec.Kind {
	case models.KindLine:
		fig.Chart, err = drawLine(spec, f, st)
	case models.KindScatter:
		err = drawScatter(fig, f, st, o)
	case models.KindViolin:
		fig.Chart, err = drawViolin(spec, f, st)
	case models.KindScatterMap:
		fig.Chart, err = drawMap(spec, f, st)
	case models.KindLinePolar:
		fig.Chart, err = drawPolar(spec, f, st)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedKind, spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("draw slot %d: %w", spec.Slot, err)
	}
	return fig, nil
}

func baseOptions(spec models.ChartSpec, st theme.Style, trigger string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       pageTitle(spec),
			ChartID:         ChartID(spec.Slot),
			Width:           "100%",
			Height:          "450px",
			Theme:           st.ECharts,
			BackgroundColor: st.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      spec.Title,
			Subtitle:   spec.Subtitle,
			TitleStyle: &opts.TextStyle{FontSize: int(math.Round(16 * st.FontScale))},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}),
	}
}

func pageTitle(spec models.ChartSpec) string {
	if spec.Title == "" {
		return fmt.Sprintf("Graph %d", spec.Slot)
	}
	return spec.Title
}

func splitLine(show bool, st theme.Style) *opts.SplitLine {
	if st.Plain {
		return nil
	}
	return &opts.SplitLine{Show: opts.Bool(show)}
}

func numericColumn(f *engine.Frame, name string) (*engine.Column, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != engine.Numeric {
		return nil, fmt.Errorf("column %s.%s is %s, want numeric", f.Name(), name, c.Kind)
	}
	return c, nil
}

// num keeps missing values out of the chart JSON; echarts reads "-" as a gap.
func num(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}

// symbolSize scales marker area with v, so the largest value gets sizeMax.
func symbolSize(v, max float64, sizeMax int) int {
	if sizeMax <= 0 {
		sizeMax = 20
	}
	if max <= 0 || math.IsNaN(v) || v <= 0 {
		return 2
	}
	s := int(math.Round(float64(sizeMax) * math.Sqrt(v/max)))
	if s < 2 {
		return 2
	}
	return s
}

// ChartID is the DOM id of the chart in slot. It doubles as part of a
// script variable name, so it must be a valid identifier.
func ChartID(slot int) string {
	return fmt.Sprintf("graph_%d", slot)
}

// Slot picks the spec for a 1-based slot number.
func Slot(specs []models.ChartSpec, slot int) (models.ChartSpec, error) {
	for _, s := range specs {
		if s.Slot == slot {
			return s, nil
		}
	}
	return models.ChartSpec{}, fmt.Errorf("%w: %d", ErrUnknownSlot, slot)
}
