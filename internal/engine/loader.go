package engine

import (
	"bufio"
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xuri/excelize/v2"
)

// Layouts tried, in order, when deciding whether a text column is temporal.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"January 2006",
	"Jan 2006",
}

// LoadFile reads a .csv or .xlsx file into a frame named after the file.
func LoadFile(path string) (*Frame, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(name, path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return LoadCSV(name, f)
	}
}

// LoadCSV parses a CSV stream with a header row. Every column is read as
// text and typed as a whole in build, so a column is numeric only when all
// of its values are.
func LoadCSV(name string, r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	names, err := sniffHeader(br)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	fields := make([]arrow.Field, len(names))
	for i, n := range names {
		fields[i] = arrow.Field{Name: n, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	rdr := csv.NewReader(br, arrow.NewSchema(fields, nil),
		csv.WithHeader(true),
		csv.WithChunk(-1),
		csv.WithAllocator(memory.NewGoAllocator()),
	)
	defer rdr.Release()

	builder := make([]*columnBuilder, len(names))
	for i, n := range names {
		builder[i] = &columnBuilder{name: n}
	}
	rows := 0
	for rdr.Next() {
		rec := rdr.Record()
		rows += int(rec.NumRows())
		for i, b := range builder {
			b.appendText(rec.Column(i))
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("parse %s: no rows", name)
	}

	cols := make([]*Column, len(builder))
	for i, b := range builder {
		cols[i] = b.build()
	}
	return NewFrame(name, cols...)
}

// sniffHeader reads the header record without consuming it from br.
func sniffHeader(br *bufio.Reader) ([]string, error) {
	line, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i+1]
	}
	header, err := stdcsv.NewReader(bytes.NewReader(line)).Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return header, nil
}

func loadExcel(name, path string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("parse %s: no rows", name)
	}

	header := rows[0]
	builder := make([]*columnBuilder, len(header))
	for i, h := range header {
		builder[i] = &columnBuilder{name: strings.TrimSpace(h), text: make([]string, 0, len(rows)-1)}
	}
	for _, row := range rows[1:] {
		for i, b := range builder {
			// GetRows trims trailing empty cells.
			if i < len(row) {
				b.text = append(b.text, row[i])
			} else {
				b.text = append(b.text, "")
			}
		}
	}

	cols := make([]*Column, len(builder))
	for i, b := range builder {
		cols[i] = b.build()
	}
	return NewFrame(name, cols...)
}

// columnBuilder collects the text of one source column.
type columnBuilder struct {
	name string
	text []string
}

func (b *columnBuilder) appendText(arr arrow.Array) {
	a := arr.(*array.String)
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			b.text = append(b.text, "")
			continue
		}
		b.text = append(b.text, a.Value(i))
	}
}

func (b *columnBuilder) build() *Column {
	if floats, ok := parseFloats(b.text); ok {
		return NumericColumn(b.name, floats...)
	}
	if times, ok := parseTimes(b.text); ok {
		return TemporalColumn(b.name, times...)
	}
	return CategoricalColumn(b.name, b.text...)
}

func parseFloats(values []string) ([]float64, bool) {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, len(values) > 0
}

func parseTimes(values []string) ([]time.Time, bool) {
	if len(values) == 0 {
		return nil, false
	}
	var layout string
	for _, l := range timeLayouts {
		if _, err := time.Parse(l, strings.TrimSpace(values[0])); err == nil {
			layout = l
			break
		}
	}
	if layout == "" {
		return nil, false
	}
	out := make([]time.Time, len(values))
	for i, v := range values {
		t, err := time.Parse(layout, strings.TrimSpace(v))
		if err != nil {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
