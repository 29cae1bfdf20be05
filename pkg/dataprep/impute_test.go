package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electviz/pkg/table"
)

func TestFillMissing(t *testing.T) {
	nan := math.NaN()
	in, err := table.New(
		table.CategoricalColumn("city", []string{"X", "", "Z"}),
		table.NumericColumn("a", []float64{1, nan, 5}),
		table.NumericColumn("b", []float64{nan, nan, nan}),
	)
	require.NoError(t, err)

	cases := []struct {
		strategy FillStrategy
		a        float64
		bMissing bool
	}{
		{FillMean, 3, true},
		{FillMedian, 3, true},
		{FillZero, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.strategy.String(), func(t *testing.T) {
			out, err := FillMissing(in, tc.strategy)
			require.NoError(t, err)
			a, _ := out.Column("a")
			assert.Equal(t, []float64{1, tc.a, 5}, a.Floats)
			b, _ := out.Column("b")
			assert.Equal(t, tc.bMissing, math.IsNaN(b.Floats[0]))
			city, _ := out.Column("city")
			assert.Equal(t, []string{"X", UnknownCategory, "Z"}, city.Strings)
		})
	}

	same, err := FillMissing(in, FillNone)
	require.NoError(t, err)
	assert.Same(t, in, same)

	orig, _ := in.Column("a")
	assert.True(t, math.IsNaN(orig.Floats[1]), "input is untouched")
}

func TestParseFillStrategy(t *testing.T) {
	s, err := ParseFillStrategy("Median")
	require.NoError(t, err)
	assert.Equal(t, FillMedian, s)

	_, err = ParseFillStrategy("knn")
	require.Error(t, err)

	var fs FillStrategy
	require.NoError(t, fs.UnmarshalText([]byte("zero")))
	assert.Equal(t, FillZero, fs)
}
