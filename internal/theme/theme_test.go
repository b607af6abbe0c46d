package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllHasElevenTemplatesInOrder(t *testing.T) {
	got := Names()
	want := []string{
		"plotly", "ggplot2", "seaborn", "simple_white", "plotly_white",
		"plotly_dark", "presentation", "xgridoff", "ygridoff", "gridon", "none",
	}
	assert.Equal(t, want, got)
	assert.Equal(t, Plotly, All()[0])
}

func TestAllReturnsCopy(t *testing.T) {
	ids := All()
	ids[0] = "mutated"
	assert.Equal(t, Plotly, All()[0])
}

func TestParse(t *testing.T) {
	for _, name := range Names() {
		id, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, id.String())
	}

	id, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default, id)

	_, err = Parse("solarized")
	assert.True(t, errors.Is(err, ErrUnknownTheme))
}

func TestStyleOf(t *testing.T) {
	assert.False(t, StyleOf(XGridOff).XGrid)
	assert.True(t, StyleOf(XGridOff).YGrid)
	assert.True(t, StyleOf(YGridOff).XGrid)
	assert.False(t, StyleOf(YGridOff).YGrid)
	assert.Equal(t, "dark", StyleOf(PlotlyDark).ECharts)
	assert.True(t, StyleOf(None).Plain)
	assert.True(t, StyleOf("bogus").Plain)
}
