package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrColumnNotFound = errors.New("column not found")

type ColumnKind int

const (
	Numeric ColumnKind = iota
	Categorical
	Temporal
)

func (k ColumnKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Temporal:
		return "temporal"
	}
	return fmt.Sprintf("ColumnKind(%d)", int(k))
}

// Column holds one column in flat arrays. Only the slice matching Kind is set.
type Column struct {
	Name string
	Kind ColumnKind

	Floats []float64
	Times  []time.Time

	// Dictionary encoded categoricals (ID -> String), IDs in first-seen order.
	Codes []int32
	Dict  []string
}

func (c *Column) Len() int {
	switch c.Kind {
	case Numeric:
		return len(c.Floats)
	case Temporal:
		return len(c.Times)
	default:
		return len(c.Codes)
	}
}

// String renders row i the way it is shown on axes and in tooltips.
func (c *Column) String(i int) string {
	switch c.Kind {
	case Numeric:
		return formatFloat(c.Floats[i])
	case Temporal:
		t := c.Times[i]
		if t.Day() == 1 && t.Hour() == 0 && t.Minute() == 0 {
			return t.Format("2006-01")
		}
		return t.Format("2006-01-02")
	default:
		return c.Dict[c.Codes[i]]
	}
}

// Frame is an immutable table in Struct-of-Arrays format. Frames are shared
// read-only between requests; nothing mutates one after construction.
type Frame struct {
	name    string
	rows    int
	columns []*Column
	index   map[string]int
}

// NewFrame validates that all columns have the same length.
func NewFrame(name string, columns ...*Column) (*Frame, error) {
	f := &Frame{name: name, columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("frame %s: duplicate column %q", name, c.Name)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("frame %s: column %q has %d rows, want %d", name, c.Name, c.Len(), f.rows)
		}
		f.index[c.Name] = i
	}
	return f, nil
}

func (f *Frame) Name() string { return f.name }
func (f *Frame) Rows() int    { return f.rows }

// ColumnNames returns column names in file order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

func (f *Frame) Column(name string) (*Column, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrColumnNotFound, f.name, name)
	}
	return f.columns[i], nil
}

// SortBy returns a copy of the frame with rows ordered by the named column.
// Categoricals sort by label; the sort is stable.
func (f *Frame) SortBy(name string) (*Frame, error) {
	key, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	order := make([]int, f.rows)
	for i := range order {
		order[i] = i
	}
	var less func(a, b int) bool
	switch key.Kind {
	case Numeric:
		less = func(a, b int) bool { return key.Floats[a] < key.Floats[b] }
	case Temporal:
		less = func(a, b int) bool { return key.Times[a].Before(key.Times[b]) }
	default:
		less = func(a, b int) bool { return key.Dict[key.Codes[a]] < key.Dict[key.Codes[b]] }
	}
	sort.SliceStable(order, func(i, j int) bool { return less(order[i], order[j]) })

	cols := make([]*Column, len(f.columns))
	for ci, c := range f.columns {
		nc := &Column{Name: c.Name, Kind: c.Kind, Dict: c.Dict}
		switch c.Kind {
		case Numeric:
			nc.Floats = make([]float64, f.rows)
			for i, r := range order {
				nc.Floats[i] = c.Floats[r]
			}
		case Temporal:
			nc.Times = make([]time.Time, f.rows)
			for i, r := range order {
				nc.Times[i] = c.Times[r]
			}
		default:
			nc.Codes = make([]int32, f.rows)
			for i, r := range order {
				nc.Codes[i] = c.Codes[r]
			}
		}
		cols[ci] = nc
	}
	return NewFrame(f.name, cols...)
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, values ...float64) *Column {
	return &Column{Name: name, Kind: Numeric, Floats: values}
}

// CategoricalColumn dictionary-encodes values.
func CategoricalColumn(name string, values ...string) *Column {
	c := &Column{Name: name, Kind: Categorical, Codes: make([]int32, len(values))}
	ids := make(map[string]int32)
	for i, v := range values {
		id, ok := ids[v]
		if !ok {
			id = int32(len(c.Dict))
			c.Dict = append(c.Dict, v)
			ids[v] = id
		}
		c.Codes[i] = id
	}
	return c
}

func TemporalColumn(name string, values ...time.Time) *Column {
	return &Column{Name: name, Kind: Temporal, Times: values}
}
