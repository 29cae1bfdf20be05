// Package table holds the immutable column-oriented Table that flows
// between the loader, the aggregation and filtering stages and the reducer.
package table

import (
	"fmt"
	"math"
	"strconv"

	"electviz/pkg/core"
)

// Kind is the type of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultIndexName is used by ResetIndex when the index has no name.
const DefaultIndexName = "index"

// Column is a named vector of values. Numeric columns use Floats with NaN
// marking a missing value; categorical columns use Strings with "" marking
// a missing value.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NumericColumn builds a numeric column (copies vals).
func NumericColumn(name string, vals []float64) Column {
	c := Column{Name: name, Kind: Numeric, Floats: make([]float64, len(vals))}
	copy(c.Floats, vals)
	return c
}

// CategoricalColumn builds a categorical column (copies vals).
func CategoricalColumn(name string, vals []string) Column {
	c := Column{Name: name, Kind: Categorical, Strings: make([]string, len(vals))}
	copy(c.Strings, vals)
	return c
}

// Len returns the number of values in c.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether row i holds no value.
func (c Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// Label formats row i as a string, for use as a group key or index label.
func (c Column) Label(i int) string {
	if c.Kind == Numeric {
		return strconv.FormatFloat(c.Floats[i], 'f', -1, 64)
	}
	return c.Strings[i]
}

func (c Column) clone() Column {
	if c.Kind == Numeric {
		return NumericColumn(c.Name, c.Floats)
	}
	return CategoricalColumn(c.Name, c.Strings)
}

// Index is an optional set of row labels, one per row.
type Index struct {
	Name   string
	Labels []string
}

// Table is an ordered set of uniquely named, equally long columns with an
// optional row index. A Table is never modified after construction.
type Table struct {
	columns []Column
	byName  map[string]int
	index   *Index
	rows    int
}

// New builds a Table from cols, copying their data.
func New(cols ...Column) (*Table, error) {
	return build(cols, nil)
}

// NewIndexed builds a Table with a row index.
func NewIndexed(idx Index, cols ...Column) (*Table, error) {
	return build(cols, &idx)
}

func build(cols []Column, idx *Index) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	t.rows = -1
	if idx != nil {
		t.rows = len(idx.Labels)
		labels := make([]string, len(idx.Labels))
		copy(labels, idx.Labels)
		t.index = &Index{Name: idx.Name, Labels: labels}
	}
	for _, c := range cols {
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if t.rows < 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrRowMismatch, c.Name, c.Len(), t.rows)
		}
		t.byName[c.Name] = len(t.columns)
		t.columns = append(t.columns, c.clone())
	}
	if t.rows < 0 {
		t.rows = 0
	}
	return t, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns (the index is not a column).
func (t *Table) NumCols() int { return len(t.columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column called name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return t.columns[i].clone(), nil
}

// Columns returns copies of all columns in order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.clone()
	}
	return out
}

// Index returns a copy of the row index, or nil when there is none.
func (t *Table) Index() *Index {
	if t.index == nil {
		return nil
	}
	labels := make([]string, len(t.index.Labels))
	copy(labels, t.index.Labels)
	return &Index{Name: t.index.Name, Labels: labels}
}

// NamesOf returns the names of columns of the given kind, in order.
func (t *Table) NamesOf(kind Kind) []string {
	var names []string
	for _, c := range t.columns {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// Select returns a table holding only the named columns, in the given
// order. The index is kept.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		i, ok := t.byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, n)
		}
		cols = append(cols, t.columns[i])
	}
	return build(cols, t.index)
}

// ResetIndex moves the index into a leading categorical column named
// after the index (DefaultIndexName if unnamed). A table without an
// index is returned unchanged.
func (t *Table) ResetIndex() (*Table, error) {
	if t.index == nil {
		return t, nil
	}
	name := t.index.Name
	if name == "" {
		name = DefaultIndexName
	}
	cols := append([]Column{{Name: name, Kind: Categorical, Strings: t.index.Labels}}, t.columns...)
	return build(cols, nil)
}

// Transpose swaps rows and columns of an all-numeric table. Column names
// become the index labels and the index labels (or row positions when
// there is no index) become the column names. The new index is unnamed.
func (t *Table) Transpose() (*Table, error) {
	data := make([][]float64, len(t.columns))
	for j, c := range t.columns {
		if c.Kind != Numeric {
			return nil, fmt.Errorf("transpose: %w: %q", ErrNotNumeric, c.Name)
		}
		data[j] = c.Floats
	}
	m, err := core.FromColumns(t.rows, data)
	if err != nil {
		return nil, err
	}
	tm := m.Transpose()

	labels := make([]string, t.rows)
	for i := range labels {
		if t.index != nil {
			labels[i] = t.index.Labels[i]
		} else {
			labels[i] = fmt.Sprint(i)
		}
	}
	cols := make([]Column, t.rows)
	for j := range cols {
		cols[j] = Column{Name: labels[j], Kind: Numeric, Floats: tm.Col(j)}
	}
	return NewIndexed(Index{Labels: t.Names()}, cols...)
}
