package dataprep

import (
	"electviz/pkg/stats"
	"electviz/pkg/table"
)

// ColumnSums returns the sum of every numeric column of t, keyed by name.
func ColumnSums(t *table.Table) map[string]float64 {
	sums := make(map[string]float64)
	for _, c := range t.Columns() {
		if c.Kind == table.Numeric {
			sums[c.Name] = stats.Sum(c.Floats)
		}
	}
	return sums
}

// FilterSparse drops the numeric columns whose sum is not strictly greater
// than threshold. Surviving numeric columns keep their order and are
// followed by every non-numeric column. Rows and the index are unchanged.
func FilterSparse(t *table.Table, threshold float64) (*table.Table, error) {
	sums := ColumnSums(t)
	var keep []string
	for _, name := range t.NamesOf(table.Numeric) {
		if sums[name] > threshold {
			keep = append(keep, name)
		}
	}
	if err := table.RequireNumeric(table.StageFilter, keep, threshold); err != nil {
		return nil, err
	}
	return t.Select(append(keep, t.NamesOf(table.Categorical)...)...)
}
