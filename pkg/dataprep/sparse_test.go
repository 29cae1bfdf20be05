package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electviz/pkg/table"
)

// cities is the three-city scenario: column sums are
// partyA=1110, partyB=505, partyC=300.
func cities(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New(
		table.CategoricalColumn("city", []string{"X", "Y", "Z"}),
		table.NumericColumn("partyA", []float64{100, 10, 1000}),
		table.NumericColumn("partyB", []float64{0, 5, 500}),
		table.NumericColumn("partyC", []float64{50, 0, 250}),
	)
	require.NoError(t, err)
	return tb
}

func TestFilterSparseKeepsAllAboveThreshold(t *testing.T) {
	out, err := FilterSparse(cities(t), 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"partyA", "partyB", "partyC", "city"}, out.Names())
	assert.Equal(t, 3, out.NumRows())
}

func TestFilterSparseStrictBoundary(t *testing.T) {
	// partyC sums to exactly 300 and must go.
	out, err := FilterSparse(cities(t), 300)
	require.NoError(t, err)
	assert.Equal(t, []string{"partyA", "partyB", "city"}, out.Names())

	out, err = FilterSparse(cities(t), 299.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"partyA", "partyB", "partyC", "city"}, out.Names())
}

func TestFilterSparseFailsBelowTwo(t *testing.T) {
	_, err := FilterSparse(cities(t), 600)
	require.ErrorIs(t, err, table.ErrInsufficientNumericColumns)

	var ice *table.InsufficientColumnsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, table.StageFilter, ice.Stage)
	assert.Equal(t, []string{"partyA"}, ice.Available)
	assert.Equal(t, 600.0, ice.Threshold)

	_, err = FilterSparse(cities(t), 1110)
	require.ErrorIs(t, err, table.ErrInsufficientNumericColumns)
	require.ErrorAs(t, err, &ice)
	assert.Empty(t, ice.Available)
}

func TestFilterSparseMonotone(t *testing.T) {
	in := cities(t)
	prev := math.Inf(1)
	for _, th := range []float64{math.Inf(-1), -1, 0, 100, 300, 400, 504} {
		out, err := FilterSparse(in, th)
		require.NoError(t, err, "threshold %g", th)
		n := float64(len(out.NamesOf(table.Numeric)))
		assert.LessOrEqual(t, n, prev, "threshold %g", th)
		prev = n
	}

	all, err := FilterSparse(in, math.Inf(-1))
	require.NoError(t, err)
	assert.Len(t, all.NamesOf(table.Numeric), 3)
}

func TestFilterSparseKeepsIndexAndSkipsMissing(t *testing.T) {
	tb, err := table.NewIndexed(table.Index{Name: "city", Labels: []string{"X", "Y"}},
		table.NumericColumn("a", []float64{5, math.NaN()}),
		table.NumericColumn("b", []float64{3, 3}),
		table.NumericColumn("c", []float64{1, 1}),
	)
	require.NoError(t, err)

	sums := ColumnSums(tb)
	assert.Equal(t, 5.0, sums["a"])

	out, err := FilterSparse(tb, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Names())
	require.NotNil(t, out.Index())
	assert.Equal(t, []string{"X", "Y"}, out.Index().Labels)
}
