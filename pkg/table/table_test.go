package table

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tb, err := New(
		CategoricalColumn("city", []string{"X", "Y", "Z"}),
		NumericColumn("partyA", []float64{100, 10, 1000}),
		NumericColumn("partyB", []float64{0, 5, 500}),
	)
	require.NoError(t, err)
	return tb
}

func TestNewValidates(t *testing.T) {
	_, err := New(NumericColumn("a", []float64{1}), NumericColumn("a", []float64{2}))
	require.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = New(NumericColumn("a", []float64{1}), NumericColumn("b", []float64{1, 2}))
	require.ErrorIs(t, err, ErrRowMismatch)

	_, err = NewIndexed(Index{Labels: []string{"r1"}}, NumericColumn("a", []float64{1, 2}))
	require.ErrorIs(t, err, ErrRowMismatch)

	empty, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumRows())
	assert.Equal(t, 0, empty.NumCols())
}

func TestTableCopiesInput(t *testing.T) {
	vals := []float64{1, 2, 3}
	tb, err := New(NumericColumn("a", vals))
	require.NoError(t, err)
	vals[0] = 99

	c, err := tb.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, c.Floats)

	c.Floats[1] = 42
	again, _ := tb.Column("a")
	assert.Equal(t, 2.0, again.Floats[1], "accessors must not alias table storage")
}

func TestNamesOfAndSelect(t *testing.T) {
	tb := sample(t)
	assert.Equal(t, []string{"partyA", "partyB"}, tb.NamesOf(Numeric))
	assert.Equal(t, []string{"city"}, tb.NamesOf(Categorical))

	sel, err := tb.Select("partyB", "city")
	require.NoError(t, err)
	assert.Equal(t, []string{"partyB", "city"}, sel.Names())
	assert.Equal(t, 3, sel.NumRows())

	_, err = tb.Select("nope")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestColumnMissingAndLabel(t *testing.T) {
	n := NumericColumn("n", []float64{1.5, math.NaN()})
	assert.False(t, n.IsMissing(0))
	assert.True(t, n.IsMissing(1))
	assert.Equal(t, "1.5", n.Label(0))

	// Large codes stay in plain decimal notation.
	codes := NumericColumn("code", []float64{1e6, 12345678, -0.25})
	assert.Equal(t, "1000000", codes.Label(0))
	assert.Equal(t, "12345678", codes.Label(1))
	assert.Equal(t, "-0.25", codes.Label(2))

	c := CategoricalColumn("c", []string{"a", ""})
	assert.False(t, c.IsMissing(0))
	assert.True(t, c.IsMissing(1))
}

func TestResetIndex(t *testing.T) {
	tb, err := NewIndexed(Index{Name: "city", Labels: []string{"X", "Y"}},
		NumericColumn("a", []float64{1, 2}))
	require.NoError(t, err)

	flat, err := tb.ResetIndex()
	require.NoError(t, err)
	assert.Nil(t, flat.Index())
	assert.Equal(t, []string{"city", "a"}, flat.Names())
	city, _ := flat.Column("city")
	assert.Equal(t, Categorical, city.Kind)
	assert.Equal(t, []string{"X", "Y"}, city.Strings)

	unnamed, err := NewIndexed(Index{Labels: []string{"p"}}, NumericColumn("a", []float64{1}))
	require.NoError(t, err)
	flat, err = unnamed.ResetIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultIndexName, "a"}, flat.Names())

	same, err := sample(t).ResetIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "partyA", "partyB"}, same.Names())
}

func TestTranspose(t *testing.T) {
	tb, err := NewIndexed(Index{Name: "city", Labels: []string{"X", "Y", "Z"}},
		NumericColumn("partyA", []float64{100, 10, 1000}),
		NumericColumn("partyB", []float64{0, 5, 500}),
	)
	require.NoError(t, err)

	tr, err := tb.Transpose()
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, tr.Names())
	assert.Equal(t, 2, tr.NumRows())
	idx := tr.Index()
	require.NotNil(t, idx)
	assert.Equal(t, "", idx.Name)
	assert.Equal(t, []string{"partyA", "partyB"}, idx.Labels)

	z, _ := tr.Column("Z")
	assert.Equal(t, []float64{1000, 500}, z.Floats)

	back, err := tr.Transpose()
	require.NoError(t, err)
	assert.Equal(t, []string{"partyA", "partyB"}, back.Names())
	b, _ := back.Column("partyB")
	assert.Equal(t, []float64{0, 5, 500}, b.Floats)

	_, err = sample(t).Transpose()
	require.ErrorIs(t, err, ErrNotNumeric)
}

func TestInsufficientColumnsError(t *testing.T) {
	require.NoError(t, RequireNumeric(StageReduce, []string{"a", "b"}, 0))

	err := RequireNumeric(StageFilter, []string{"partyA"}, 600)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientNumericColumns))

	var ice *InsufficientColumnsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, StageFilter, ice.Stage)
	assert.Equal(t, []string{"partyA"}, ice.Available)
	assert.Equal(t, 600.0, ice.Threshold)
	assert.Contains(t, err.Error(), "threshold 600")
	assert.Contains(t, err.Error(), "partyA")
}
