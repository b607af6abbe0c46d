package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Group is the set of rows sharing one value of a grouping column.
type Group struct {
	Key  string
	Rows []int
}

// GroupBy partitions row indices by the named column. Categoricals keep
// dictionary (first-seen) order; numeric and temporal keys are ascending.
func (f *Frame) GroupBy(name string) ([]Group, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	if c.Kind == Categorical {
		// Array indexing by dictionary ID instead of a map.
		buckets := make([][]int, len(c.Dict))
		for row, id := range c.Codes {
			buckets[id] = append(buckets[id], row)
		}
		groups := make([]Group, 0, len(c.Dict))
		for id, rows := range buckets {
			if len(rows) > 0 {
				groups = append(groups, Group{Key: c.Dict[id], Rows: rows})
			}
		}
		return groups, nil
	}

	var groups []Group
	for _, row := range f.sortedOrder(c) {
		k := c.String(row)
		if len(groups) == 0 || groups[len(groups)-1].Key != k {
			groups = append(groups, Group{Key: k})
		}
		g := &groups[len(groups)-1]
		g.Rows = append(g.Rows, row)
	}
	return groups, nil
}

func (f *Frame) sortedOrder(c *Column) []int {
	order := make([]int, f.rows)
	for i := range order {
		order[i] = i
	}
	switch c.Kind {
	case Numeric:
		sort.SliceStable(order, func(i, j int) bool { return c.Floats[order[i]] < c.Floats[order[j]] })
	case Temporal:
		sort.SliceStable(order, func(i, j int) bool { return c.Times[order[i]].Before(c.Times[order[j]]) })
	}
	return order
}

// Values gathers a numeric column at the given rows, skipping missing values.
func (f *Frame) Values(name string, rows []int) ([]float64, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("column %s.%s is %s, want numeric", f.name, name, c.Kind)
	}
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v := c.Floats[r]; !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Summary is the five-number summary drawn as a box.
type Summary struct {
	Min, Q1, Median, Q3, Max float64
}

func (s Summary) Slice() []float64 {
	return []float64{s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

// Summarize computes the five-number summary of values.
func Summarize(values []float64) (Summary, error) {
	data := stats.Float64Data(values)
	q, err := stats.Quartile(data)
	if err != nil {
		// Quartile needs more than one value.
		if len(values) == 1 {
			v := values[0]
			return Summary{v, v, v, v, v}, nil
		}
		return Summary{}, err
	}
	lo, err := data.Min()
	if err != nil {
		return Summary{}, err
	}
	hi, err := data.Max()
	if err != nil {
		return Summary{}, err
	}
	return Summary{Min: lo, Q1: q.Q1, Median: q.Q2, Q3: q.Q3, Max: hi}, nil
}

// Extent returns the min and max of a numeric column, ignoring missing values.
func (f *Frame) Extent(name string) (lo, hi float64, err error) {
	c, err := f.Column(name)
	if err != nil {
		return 0, 0, err
	}
	all := make([]int, f.rows)
	for i := range all {
		all[i] = i
	}
	vals, err := f.Values(name, all)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) == 0 {
		return 0, 0, fmt.Errorf("column %s.%s has no values", f.name, c.Name)
	}
	return floats.Min(vals), floats.Max(vals), nil
}
