package engine

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dashboard/internal/models"
)

//go:embed data/*.csv
var sampleData embed.FS

// The time series is always shown in month order.
const timeSeriesSortKey = "month"

// Sources names the files behind each dataset. An empty path for the
// gapminder, tips or carshare datasets selects the bundled sample.
type Sources struct {
	TimeSeries string
	Gapminder  string
	Tips       string
	Carshare   string
}

// Catalog holds every dataset the dashboard draws from. It is built once at
// startup and only read afterwards.
type Catalog struct {
	frames map[models.DatasetID]*Frame
}

func NewCatalog(frames map[models.DatasetID]*Frame) *Catalog {
	c := &Catalog{frames: make(map[models.DatasetID]*Frame, len(frames)+1)}
	for id, f := range frames {
		c.frames[id] = f
	}
	if _, ok := c.frames[models.DatasetRadar]; !ok {
		c.frames[models.DatasetRadar] = RadarFrame()
	}
	return c
}

func (c *Catalog) Frame(id models.DatasetID) (*Frame, error) {
	f, ok := c.frames[id]
	if !ok {
		return nil, fmt.Errorf("dataset %q not loaded", id)
	}
	return f, nil
}

// LoadCatalog reads all datasets concurrently. The first failure cancels the
// rest and is returned.
func LoadCatalog(ctx context.Context, src Sources, logger *zap.Logger) (*Catalog, error) {
	type job struct {
		id     models.DatasetID
		path   string
		sample string
	}
	jobs := []job{
		{models.DatasetTimeSeries, src.TimeSeries, ""},
		{models.DatasetGapminder, src.Gapminder, "data/gapminder.csv"},
		{models.DatasetTips, src.Tips, "data/tips.csv"},
		{models.DatasetCarshare, src.Carshare, "data/carshare.csv"},
	}

	frames := make([]*Frame, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			f, err := loadSource(j.id, j.path, j.sample)
			if err != nil {
				return fmt.Errorf("load %s dataset: %w", j.id, err)
			}
			if j.id == models.DatasetTimeSeries {
				if f, err = f.SortBy(timeSeriesSortKey); err != nil {
					return fmt.Errorf("sort %s dataset: %w", j.id, err)
				}
			}
			frames[i] = f
			logger.Info("dataset loaded",
				zap.String("dataset", string(j.id)),
				zap.String("source", sourceName(j.path, j.sample)),
				zap.Int("rows", f.Rows()),
				zap.Duration("took", time.Since(start)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[models.DatasetID]*Frame, len(jobs))
	for i, j := range jobs {
		byID[j.id] = frames[i]
	}
	return NewCatalog(byID), nil
}

func loadSource(id models.DatasetID, path, sample string) (*Frame, error) {
	if path != "" {
		return LoadFile(path)
	}
	if sample == "" {
		return nil, fmt.Errorf("no data file configured")
	}
	b, err := sampleData.ReadFile(sample)
	if err != nil {
		return nil, err
	}
	return LoadCSV(string(id), bytes.NewReader(b))
}

func sourceName(path, sample string) string {
	if path != "" {
		return path
	}
	return "embedded:" + sample
}

// RadarFrame is the fixed inline dataset behind the polar chart.
func RadarFrame() *Frame {
	f, err := NewFrame(string(models.DatasetRadar),
		NumericColumn("r", 1, 5, 2, 2, 3),
		CategoricalColumn("theta",
			"processing cost",
			"mechanical properties",
			"chemical stability",
			"thermal stability",
			"device integration",
		),
	)
	if err != nil {
		panic(err)
	}
	return f
}
