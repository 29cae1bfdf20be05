package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electviz/pkg/table"
)

func reduced(t *testing.T, c1, c2 []float64) *table.Table {
	t.Helper()
	tb, err := table.New(
		table.NumericColumn("component 1", c1),
		table.NumericColumn("component 2", c2),
		table.CategoricalColumn("city_name", []string{"Haifa", "Eilat", "Acre"}[:len(c1)]),
	)
	require.NoError(t, err)
	return tb
}

func TestScatterSave(t *testing.T) {
	tb := reduced(t, []float64{-1.2, 0.4, 0.8}, []float64{0.3, -0.9, 0.6})
	p, err := Scatter(tb, Options{X: "component 1", Y: "component 2", Label: "city_name", Title: "cities"})
	require.NoError(t, err)
	assert.Equal(t, "cities", p.Title.Text)
	assert.Equal(t, "component 1", p.X.Label.Text)

	dir := t.TempDir()
	for _, name := range []string{"cities.png", "cities.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(p, path, 4, 3))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestScatterSkipsNonFinite(t *testing.T) {
	tb := reduced(t, []float64{1, math.NaN(), 2}, []float64{1, 2, math.Inf(1)})
	_, err := Scatter(tb, Options{X: "component 1", Y: "component 2"})
	require.NoError(t, err)

	tb = reduced(t, []float64{math.NaN(), math.NaN()}, []float64{1, 2})
	_, err = Scatter(tb, Options{X: "component 1", Y: "component 2", Label: "city_name"})
	require.ErrorIs(t, err, ErrNoPoints)
}

func TestScatterColumnErrors(t *testing.T) {
	tb := reduced(t, []float64{1, 2}, []float64{3, 4})

	_, err := Scatter(tb, Options{X: "component 1", Y: "component 3"})
	require.ErrorIs(t, err, table.ErrUnknownColumn)

	_, err = Scatter(tb, Options{X: "city_name", Y: "component 2"})
	require.ErrorIs(t, err, table.ErrNotNumeric)

	_, err = Scatter(tb, Options{X: "component 1", Y: "component 2", Label: "party_name"})
	require.ErrorIs(t, err, table.ErrUnknownColumn)
}
