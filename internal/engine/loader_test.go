package engine

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadFileCSV(t *testing.T) {
	csvContent := []byte(`month,profit,region
2021-03,30.5,North
2021-01,10.25,South
2021-02,20.0,North
`)

	tmpFile, err := os.CreateTemp("", "test_data_*.csv")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.Write(csvContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	f, err := LoadFile(tmpFile.Name())
	require.NoError(t, err)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, []string{"month", "profit", "region"}, f.ColumnNames())

	month, err := f.Column("month")
	require.NoError(t, err)
	assert.Equal(t, Temporal, month.Kind)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), month.Times[0])
	assert.Equal(t, "2021-03", month.String(0))

	profit, err := f.Column("profit")
	require.NoError(t, err)
	assert.Equal(t, Numeric, profit.Kind)
	assert.Equal(t, []float64{30.5, 10.25, 20.0}, profit.Floats)

	region, err := f.Column("region")
	require.NoError(t, err)
	assert.Equal(t, Categorical, region.Kind)
	assert.Equal(t, []string{"North", "South"}, region.Dict)
	assert.Equal(t, []int32{0, 1, 0}, region.Codes)
}

func TestLoadCSVIntegerAndDateColumns(t *testing.T) {
	f, err := LoadCSV("events", strings.NewReader("day,count\n2022-05-01,3\n2022-05-02,7\n"))
	require.NoError(t, err)

	day, err := f.Column("day")
	require.NoError(t, err)
	assert.Equal(t, Temporal, day.Kind)
	assert.Equal(t, "2022-05-02", day.String(1))

	count, err := f.Column("count")
	require.NoError(t, err)
	assert.Equal(t, Numeric, count.Kind)
	assert.Equal(t, []float64{3, 7}, count.Floats)
}

func TestLoadCSVTypesWholeColumn(t *testing.T) {
	f, err := LoadCSV("ts", strings.NewReader("month,profit,note\n2023-01,1000,a\n2023-02,1204.50,7\n2023-03,,b\n"))
	require.NoError(t, err)

	profit, err := f.Column("profit")
	require.NoError(t, err)
	require.Equal(t, Numeric, profit.Kind)
	assert.Equal(t, 1000.0, profit.Floats[0])
	assert.Equal(t, 1204.5, profit.Floats[1])
	assert.True(t, math.IsNaN(profit.Floats[2]))

	note, err := f.Column("note")
	require.NoError(t, err)
	assert.Equal(t, Categorical, note.Kind)
	assert.Equal(t, "7", note.String(1))
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	_, err := LoadCSV("empty", strings.NewReader("month,profit\n"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadFileExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	rows := [][]interface{}{
		{"month", "profit"},
		{"2020-02", 5.5},
		{"2020-01", 4},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sales", f.Name())
	assert.Equal(t, 2, f.Rows())

	profit, err := f.Column("profit")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.5, 4}, profit.Floats)

	month, err := f.Column("month")
	require.NoError(t, err)
	assert.Equal(t, Temporal, month.Kind)
}

func TestParseHelpers(t *testing.T) {
	floats, ok := parseFloats([]string{"1.5", "", "3"})
	require.True(t, ok)
	assert.Equal(t, 1.5, floats[0])
	assert.True(t, math.IsNaN(floats[1]))

	_, ok = parseFloats([]string{"1.5", "abc"})
	assert.False(t, ok)

	times, ok := parseTimes([]string{"2023-12", "2024-01"})
	require.True(t, ok)
	assert.Equal(t, time.January, times[1].Month())

	_, ok = parseTimes([]string{"2023-12", "later"})
	assert.False(t, ok)

	assert.Equal(t, "123.45", formatFloat(123.45))
	assert.Equal(t, "", formatFloat(math.NaN()))
}
