package model

import (
	"fmt"

	"electviz/pkg/core"
	"electviz/pkg/table"
)

// FlippedComponent is the zero-based component whose sign Reduce inverts
// so charts keep a stable orientation.
const FlippedComponent = 1

// ComponentName returns the output column name of the i-th (zero-based)
// component: "component 1", "component 2", ...
func ComponentName(i int) string {
	return fmt.Sprintf("component %d", i+1)
}

// Reduce standardises the numeric columns of t that are not in meta,
// projects them onto their first k principal directions and returns a
// table of k component columns followed by the meta columns, row for row.
// When k >= 2 the second component is negated.
func Reduce(t *table.Table, k int, meta []string, opts ...Option) (*table.Table, error) {
	out, _, err := ReduceModel(t, k, meta, opts...)
	return out, err
}

// ReduceModel is Reduce that also returns the fitted PCA.
func ReduceModel(t *table.Table, k int, meta []string, opts ...Option) (*table.Table, *PCA, error) {
	skip := make(map[string]bool, len(meta))
	for _, m := range meta {
		if !t.Has(m) {
			return nil, nil, fmt.Errorf("%s: meta %w: %q", table.StageReduce, table.ErrUnknownColumn, m)
		}
		skip[m] = true
	}

	var features []string
	for _, name := range t.NamesOf(table.Numeric) {
		if !skip[name] {
			features = append(features, name)
		}
	}
	if err := table.RequireNumeric(table.StageReduce, features, 0); err != nil {
		return nil, nil, err
	}

	data := make([][]float64, len(features))
	for j, name := range features {
		c, _ := t.Column(name)
		data[j] = c.Floats
	}
	X, err := core.FromColumns(t.NumRows(), data)
	if err != nil {
		return nil, nil, err
	}

	pca := NewPCA(k, opts...)
	scores, err := FitTransform(pca, X)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", table.StageReduce, err)
	}
	if k > FlippedComponent {
		scores.ScaleCol(FlippedComponent, -1)
	}

	cols := make([]table.Column, 0, k+len(meta))
	for i := 0; i < k; i++ {
		cols = append(cols, table.Column{Name: ComponentName(i), Kind: table.Numeric, Floats: scores.Col(i)})
	}
	for _, m := range meta {
		c, _ := t.Column(m)
		cols = append(cols, c)
	}
	out, err := table.New(cols...)
	if err != nil {
		return nil, nil, err
	}
	return out, pca, nil
}
