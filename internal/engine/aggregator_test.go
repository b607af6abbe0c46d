package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tipsFixture(t *testing.T) *Frame {
	t.Helper()
	// Scenario:
	// Row 0: No,  Female, 1.0
	// Row 1: No,  Male,   2.0
	// Row 2: Yes, Male,   3.0
	// Row 3: No,  Male,   4.0
	// Row 4: Yes, Female, 5.0
	f, err := NewFrame("tips",
		NumericColumn("tip", 1, 2, 3, 4, 5),
		CategoricalColumn("smoker", "No", "No", "Yes", "No", "Yes"),
		CategoricalColumn("sex", "Female", "Male", "Male", "Male", "Female"),
		NumericColumn("size", 2, 3, 2, 2, 1),
	)
	require.NoError(t, err)
	return f
}

func TestGroupByCategorical(t *testing.T) {
	f := tipsFixture(t)

	groups, err := f.GroupBy("smoker")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "No", groups[0].Key)
	assert.Equal(t, []int{0, 1, 3}, groups[0].Rows)
	assert.Equal(t, "Yes", groups[1].Key)
	assert.Equal(t, []int{2, 4}, groups[1].Rows)
}

func TestGroupByNumericIsAscending(t *testing.T) {
	f := tipsFixture(t)

	groups, err := f.GroupBy("size")
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "1", groups[0].Key)
	assert.Equal(t, []int{4}, groups[0].Rows)
	assert.Equal(t, "2", groups[1].Key)
	assert.Equal(t, []int{0, 2, 3}, groups[1].Rows)
	assert.Equal(t, "3", groups[2].Key)
}

func TestGroupByMissingColumn(t *testing.T) {
	_, err := tipsFixture(t).GroupBy("day")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestValues(t *testing.T) {
	f := tipsFixture(t)

	vals, err := f.Values("tip", []int{4, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 1}, vals)

	_, err = f.Values("sex", []int{0})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{5, 1, 3, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 5.0, s.Max)
	assert.LessOrEqual(t, s.Q1, s.Median)
	assert.GreaterOrEqual(t, s.Q3, s.Median)
	assert.Len(t, s.Slice(), 5)

	_, err = Summarize(nil)
	assert.Error(t, err)
}

func TestExtent(t *testing.T) {
	lo, hi, err := tipsFixture(t).Extent("tip")
	require.NoError(t, err)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 5.0, hi)
}
