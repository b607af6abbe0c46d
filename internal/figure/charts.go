package figure

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/theme"
)

// plasma is the continuous scale used for numeric colors.
var plasma = []string{"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"}

func drawLine(spec models.ChartSpec, f *engine.Frame, st theme.Style) (Chart, error) {
	enc := spec.Encoding
	x, err := f.Column(enc.X)
	if err != nil {
		return nil, err
	}
	y, err := numericColumn(f, enc.Y)
	if err != nil {
		return nil, err
	}

	labels := make([]string, f.Rows())
	data := make([]opts.LineData, f.Rows())
	for i := range labels {
		labels[i] = x.String(i)
		data[i] = opts.LineData{Name: labels[i], Value: num(y.Floats[i])}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOptions(spec, st, "axis"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: enc.X, SplitLine: splitLine(st.XGrid, st)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: enc.Y, Scale: opts.Bool(true), SplitLine: splitLine(st.YGrid, st)}),
	)...)
	line.SetXAxis(labels).AddSeries(enc.Y, data)
	return line, nil
}

// drawScatter plots one animation frame, with a series per color group.
func drawScatter(fig *Figure, f *engine.Frame, st theme.Style, o Options) error {
	spec := fig.Spec
	enc := spec.Encoding

	x, err := numericColumn(f, enc.X)
	if err != nil {
		return err
	}
	y, err := numericColumn(f, enc.Y)
	if err != nil {
		return err
	}

	rows := allRows(f.Rows())
	if enc.AnimationFrame != "" {
		frames, err := f.GroupBy(enc.AnimationFrame)
		if err != nil {
			return err
		}
		for _, g := range frames {
			fig.Frames = append(fig.Frames, g.Key)
		}
		g, err := pickFrame(frames, o.Frame)
		if err != nil {
			return err
		}
		fig.Frame = g.Key
		rows = g.Rows
	}

	var size *engine.Column
	var sizeHi float64
	if enc.Size != "" {
		if size, err = numericColumn(f, enc.Size); err != nil {
			return err
		}
		// Scale against the whole column so sizes stay comparable across frames.
		if _, sizeHi, err = f.Extent(enc.Size); err != nil {
			return err
		}
	}
	hover, err := hoverColumn(f, enc.HoverName)
	if err != nil {
		return err
	}

	groups, err := colorGroups(f, enc.Color, rows)
	if err != nil {
		return err
	}

	sc := charts.NewScatter()
	xType := "value"
	if enc.LogX {
		xType = "log"
	}
	sc.SetGlobalOptions(append(baseOptions(spec, st, "item"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(groups) > 1), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: xType, Name: enc.X, Scale: opts.Bool(true), SplitLine: splitLine(st.XGrid, st)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: enc.Y, Scale: opts.Bool(true), SplitLine: splitLine(st.YGrid, st)}),
	)...)

	for _, g := range groups {
		data := make([]opts.ScatterData, 0, len(g.Rows))
		for _, row := range g.Rows {
			value := []interface{}{num(x.Floats[row]), num(y.Floats[row])}
			d := opts.ScatterData{}
			if size != nil {
				value = append(value, num(size.Floats[row]))
				d.SymbolSize = symbolSize(size.Floats[row], sizeHi, enc.SizeMax)
			}
			if hover != nil {
				d.Name = hover.String(row)
			}
			d.Value = value
			data = append(data, d)
		}
		sc.AddSeries(g.Key, data)
	}
	fig.Chart = sc
	return nil
}

// drawViolin draws a box per (x, color) pair, with the raw points on top
// when Points is "all".
func drawViolin(spec models.ChartSpec, f *engine.Frame, st theme.Style) (Chart, error) {
	enc := spec.Encoding

	y, err := numericColumn(f, enc.Y)
	if err != nil {
		return nil, err
	}
	cats, err := f.GroupBy(enc.X)
	if err != nil {
		return nil, err
	}
	groups, err := colorGroups(f, enc.Color, allRows(f.Rows()))
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(cats))
	catOf := make([]int, f.Rows())
	for i, c := range cats {
		labels[i] = c.Key
		for _, row := range c.Rows {
			catOf[row] = i
		}
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(append(baseOptions(spec, st, "item"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(groups) > 1), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: enc.X, SplitLine: splitLine(st.XGrid, st)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: enc.Y, Scale: opts.Bool(true), SplitLine: splitLine(st.YGrid, st)}),
	)...)
	box.SetXAxis(labels)

	points := charts.NewScatter()
	for _, g := range groups {
		perCat := make([][]int, len(cats))
		for _, row := range g.Rows {
			perCat[catOf[row]] = append(perCat[catOf[row]], row)
		}

		data := make([]opts.BoxPlotData, len(cats))
		for i, rows := range perCat {
			data[i] = opts.BoxPlotData{Name: labels[i], Value: []float64{}}
			vals, err := f.Values(enc.Y, rows)
			if err != nil {
				return nil, err
			}
			if len(vals) == 0 {
				continue
			}
			s, err := engine.Summarize(vals)
			if err != nil {
				return nil, err
			}
			data[i].Value = s.Slice()
		}
		box.AddSeries(g.Key, data)

		if enc.Points != "all" {
			continue
		}
		pts := make([]opts.ScatterData, 0, len(g.Rows))
		for _, row := range g.Rows {
			pts = append(pts, opts.ScatterData{
				Name:       hoverText(f, enc.HoverData, row),
				Value:      []interface{}{labels[catOf[row]], num(y.Floats[row])},
				SymbolSize: 4,
			})
		}
		points.AddSeries(g.Key, pts)
	}
	if enc.Points == "all" {
		box.Overlap(points)
	}
	return box, nil
}

// drawMap places points by longitude and latitude. The color column drives
// a continuous visual map over the fourth value dimension.
func drawMap(spec models.ChartSpec, f *engine.Frame, st theme.Style) (Chart, error) {
	enc := spec.Encoding

	lat, err := numericColumn(f, enc.Lat)
	if err != nil {
		return nil, err
	}
	lon, err := numericColumn(f, enc.Lon)
	if err != nil {
		return nil, err
	}
	size, err := numericColumn(f, enc.Size)
	if err != nil {
		return nil, err
	}
	color, err := numericColumn(f, enc.Color)
	if err != nil {
		return nil, err
	}
	_, sizeHi, err := f.Extent(enc.Size)
	if err != nil {
		return nil, err
	}
	colorLo, colorHi, err := f.Extent(enc.Color)
	if err != nil {
		return nil, err
	}

	data := make([]opts.ScatterData, f.Rows())
	for i := range data {
		data[i] = opts.ScatterData{
			Name:       fmt.Sprintf("%s=%s", enc.Color, color.String(i)),
			Value:      []interface{}{num(lon.Floats[i]), num(lat.Floats[i]), num(size.Floats[i]), num(color.Floats[i])},
			SymbolSize: symbolSize(size.Floats[i], sizeHi, enc.SizeMax),
		}
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(baseOptions(spec, st, "item"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: enc.Lon, Scale: opts.Bool(true), SplitLine: splitLine(st.XGrid, st)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: enc.Lat, Scale: opts.Bool(true), SplitLine: splitLine(st.YGrid, st)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:       "continuous",
			Calculable: opts.Bool(true),
			Dimension:  "3",
			Min:        float32(colorLo),
			Max:        float32(colorHi),
			InRange:    &opts.VisualMapInRange{Color: plasma},
		}),
	)...)
	sc.AddSeries(string(spec.Dataset), data)
	return sc, nil
}

// drawPolar draws r against the theta categories as one closed polygon.
func drawPolar(spec models.ChartSpec, f *engine.Frame, st theme.Style) (Chart, error) {
	enc := spec.Encoding

	r, err := numericColumn(f, enc.R)
	if err != nil {
		return nil, err
	}
	theta, err := f.Column(enc.Theta)
	if err != nil {
		return nil, err
	}
	_, hi, err := f.Extent(enc.R)
	if err != nil {
		return nil, err
	}

	indicators := make([]*opts.Indicator, f.Rows())
	values := make([]interface{}, f.Rows())
	for i := range indicators {
		indicators[i] = &opts.Indicator{Name: theta.String(i), Max: float32(math.Ceil(hi)), Min: 0}
		values[i] = num(r.Floats[i])
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(append(baseOptions(spec, st, "item"),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: indicators,
			Shape:     "polygon",
			SplitLine: splitLine(true, st),
		}),
	)...)
	radar.AddSeries(enc.R, []opts.RadarData{{Name: enc.R, Value: values}})
	return radar, nil
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func pickFrame(frames []engine.Group, want string) (engine.Group, error) {
	if len(frames) == 0 {
		return engine.Group{}, fmt.Errorf("%w: no frames", ErrUnknownFrame)
	}
	if want == "" {
		return frames[0], nil
	}
	for _, g := range frames {
		if g.Key == want {
			return g, nil
		}
	}
	return engine.Group{}, fmt.Errorf("%w: %q", ErrUnknownFrame, want)
}

// colorGroups splits rows by the color column, keeping the column's group
// order. Without a color column every row lands in one unnamed group.
func colorGroups(f *engine.Frame, name string, rows []int) ([]engine.Group, error) {
	if name == "" {
		return []engine.Group{{Rows: rows}}, nil
	}
	all, err := f.GroupBy(name)
	if err != nil {
		return nil, err
	}
	keep := make([]bool, f.Rows())
	for _, row := range rows {
		keep[row] = true
	}

	out := make([]engine.Group, 0, len(all))
	for _, g := range all {
		var picked []int
		for _, row := range g.Rows {
			if keep[row] {
				picked = append(picked, row)
			}
		}
		if len(picked) > 0 {
			out = append(out, engine.Group{Key: g.Key, Rows: picked})
		}
	}
	return out, nil
}

func hoverColumn(f *engine.Frame, name string) (*engine.Column, error) {
	if name == "" {
		return nil, nil
	}
	return f.Column(name)
}

// hoverText joins name=value pairs for the tooltip of one row.
func hoverText(f *engine.Frame, cols []string, row int) string {
	parts := make([]string, 0, len(cols))
	for _, name := range cols {
		c, err := f.Column(name)
		if err != nil {
			continue
		}
		parts = append(parts, name+"="+c.String(row))
	}
	return strings.Join(parts, ", ")
}
