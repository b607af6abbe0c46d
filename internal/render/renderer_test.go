package render

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/theme"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	ts, err := engine.NewFrame("timeseries",
		engine.TemporalColumn("month",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		),
		engine.NumericColumn("profit", 10, 12.5, 9),
	)
	require.NoError(t, err)

	tips, err := engine.NewFrame("tips",
		engine.NumericColumn("total_bill", 16.99, 10.34),
		engine.NumericColumn("tip", 1.01, 1.66),
		engine.CategoricalColumn("sex", "Female", "Male"),
		engine.CategoricalColumn("smoker", "No", "Yes"),
	)
	require.NoError(t, err)

	return New(engine.NewCatalog(map[models.DatasetID]*engine.Frame{
		models.DatasetTimeSeries: ts,
		models.DatasetTips:       tips,
	}))
}

func TestRenderReturnsFiveSpecsForEveryTheme(t *testing.T) {
	r := newTestRenderer(t)
	for _, id := range theme.All() {
		specs := r.Render(id)
		require.Len(t, specs, Slots, id)
		for i, s := range specs {
			assert.Equal(t, i+1, s.Slot, id)
		}
	}
}

func TestRenderCarriesThemeInFirstFourSlots(t *testing.T) {
	r := newTestRenderer(t)
	for _, id := range theme.All() {
		specs := r.Render(id)
		for _, s := range specs[:4] {
			assert.Equal(t, string(id), s.Theme, "slot %d", s.Slot)
			assert.Equal(t, string(id)+" figure template", s.Subtitle)
		}
	}

	specs := r.Render(theme.GGPlot2)
	for _, s := range specs[:4] {
		assert.Equal(t, "ggplot2", s.Theme)
	}
}

func TestRadarSlotIgnoresTheme(t *testing.T) {
	r := newTestRenderer(t)
	want := r.Render(theme.Default)[4]
	assert.Empty(t, want.Theme)

	for _, id := range theme.All() {
		got := r.Render(id)[4]
		assert.Equal(t, want, got, id)
		assert.Equal(t, want.Fingerprint(), got.Fingerprint(), id)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r := newTestRenderer(t)
	for _, id := range theme.All() {
		a := r.Render(id)
		b := r.Render(id)
		assert.Equal(t, a, b, id)
	}
}

func TestRenderDoesNotShareSlices(t *testing.T) {
	r := newTestRenderer(t)
	a := r.Render(theme.Plotly)
	require.NotEmpty(t, a[2].Encoding.HoverData)
	a[2].Encoding.HoverData[0] = "mutated"

	b := r.Render(theme.Plotly)
	assert.Equal(t, "total_bill", b[2].Encoding.HoverData[0])
}

func TestRenderDatasetMapping(t *testing.T) {
	specs := newTestRenderer(t).Render(theme.Seaborn)
	want := []models.DatasetID{
		models.DatasetTimeSeries,
		models.DatasetGapminder,
		models.DatasetTips,
		models.DatasetCarshare,
		models.DatasetRadar,
	}
	for i, s := range specs {
		assert.Equal(t, want[i], s.Dataset, "slot %d", s.Slot)
	}
}

func TestRenderTimeSeriesSlot(t *testing.T) {
	s := newTestRenderer(t).Render(theme.Plotly)[0]

	assert.Equal(t, models.KindLine, s.Kind)
	assert.Equal(t, "month", s.Encoding.X)
	assert.Equal(t, "profit", s.Encoding.Y)
	assert.Equal(t, "plotly", s.Theme)
}

func TestRenderEncodings(t *testing.T) {
	specs := newTestRenderer(t).Render(theme.Plotly)

	gap := specs[1].Encoding
	assert.Equal(t, "year", gap.AnimationFrame)
	assert.Equal(t, "country", gap.AnimationGroup)
	assert.True(t, gap.LogX)
	assert.Equal(t, 60, gap.SizeMax)

	tips := specs[2].Encoding
	assert.Equal(t, []string{"total_bill", "tip", "sex", "smoker"}, tips.HoverData)
	assert.True(t, tips.Box)
	assert.Equal(t, "all", tips.Points)

	car := specs[3].Encoding
	assert.Equal(t, "centroid_lat", car.Lat)
	assert.Equal(t, "centroid_lon", car.Lon)
	assert.Equal(t, 15, car.SizeMax)

	radar := specs[4]
	assert.Equal(t, models.KindLinePolar, radar.Kind)
	assert.True(t, radar.Encoding.LineClose)
}

func TestRenderConcurrent(t *testing.T) {
	r := newTestRenderer(t)
	want := r.Render(theme.PlotlyDark)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, r.Render(theme.PlotlyDark))
		}()
	}
	wg.Wait()
}
