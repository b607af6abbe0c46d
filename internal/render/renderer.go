// Package render turns a selected figure template into the dashboard's five
// chart descriptions.
package render

import (
	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/theme"
)

// Slots is the number of charts on the dashboard.
const Slots = 5

// Renderer maps a template choice to chart specs. It keeps read-only
// references to the datasets and holds no other state, so it is safe for
// concurrent use.
type Renderer struct {
	catalog *engine.Catalog
}

func New(catalog *engine.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// Render returns the five chart specs for t, in display order.
//
// The polar chart in slot 5 never carries the template; it looks the same
// whichever one is selected.
func (r *Renderer) Render(t theme.ID) []models.ChartSpec {
	subtitle := string(t) + " figure template"

	return []models.ChartSpec{
		{
			Slot:     1,
			Kind:     models.KindLine,
			Dataset:  models.DatasetTimeSeries,
			Title:    "Iris",
			Subtitle: subtitle,
			Theme:    string(t),
			Encoding: models.Encoding{X: "month", Y: "profit"},
		},
		{
			Slot:     2,
			Kind:     models.KindScatter,
			Dataset:  models.DatasetGapminder,
			Title:    "Gapminder",
			Subtitle: subtitle,
			Theme:    string(t),
			Encoding: models.Encoding{
				X:              "gdpPercap",
				Y:              "lifeExp",
				Size:           "pop",
				Color:          "continent",
				HoverName:      "country",
				AnimationFrame: "year",
				AnimationGroup: "country",
				LogX:           true,
				SizeMax:        60,
			},
		},
		{
			Slot:     3,
			Kind:     models.KindViolin,
			Dataset:  models.DatasetTips,
			Title:    "Tips",
			Subtitle: subtitle,
			Theme:    string(t),
			Encoding: models.Encoding{
				Y:         "tip",
				X:         "smoker",
				Color:     "sex",
				Box:       true,
				Points:    "all",
				HoverData: r.columns(models.DatasetTips),
			},
		},
		{
			Slot:     4,
			Kind:     models.KindScatterMap,
			Dataset:  models.DatasetCarshare,
			Title:    "Carshare",
			Subtitle: subtitle,
			Theme:    string(t),
			Encoding: models.Encoding{
				Lat:      "centroid_lat",
				Lon:      "centroid_lon",
				Color:    "peak_hour",
				Size:     "car_hours",
				SizeMax:  15,
				Zoom:     10,
				MapStyle: "carto-positron",
			},
		},
		{
			Slot:     5,
			Kind:     models.KindLinePolar,
			Dataset:  models.DatasetRadar,
			Encoding: models.Encoding{R: "r", Theta: "theta", LineClose: true},
		},
	}
}

// columns lists a dataset's columns for hover data. Specs must not share
// slices, so a fresh one is returned on every call.
func (r *Renderer) columns(id models.DatasetID) []string {
	if r.catalog == nil {
		return nil
	}
	f, err := r.catalog.Frame(id)
	if err != nil {
		return nil
	}
	return f.ColumnNames()
}
