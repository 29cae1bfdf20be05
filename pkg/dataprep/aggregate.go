package dataprep

import (
	"errors"
	"fmt"
	"strings"

	"electviz/pkg/stats"
	"electviz/pkg/table"
)

var ErrUnknownAggFunc = errors.New("dataprep: unknown aggregation function")

// AggFunc is the reduction applied to every numeric column of a group.
type AggFunc int

const (
	Sum AggFunc = iota
	Mean
	Count
	Min
	Max
	Median
)

var aggNames = [...]string{
	Sum:    "sum",
	Mean:   "mean",
	Count:  "count",
	Min:    "min",
	Max:    "max",
	Median: "median",
}

func (f AggFunc) String() string {
	if f >= 0 && int(f) < len(aggNames) {
		return aggNames[f]
	}
	return fmt.Sprintf("AggFunc(%d)", int(f))
}

// ParseAggFunc maps a name such as "sum" or "Mean" to its AggFunc.
func ParseAggFunc(name string) (AggFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for f, s := range aggNames {
		if s == n {
			return AggFunc(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAggFunc, name)
}

// Apply reduces x, skipping missing values.
func (f AggFunc) Apply(x []float64) float64 {
	switch f {
	case Mean:
		return stats.Mean(x)
	case Count:
		return stats.Count(x)
	case Min:
		return stats.Min(x)
	case Max:
		return stats.Max(x)
	case Median:
		return stats.Median(x)
	}
	return stats.Sum(x)
}

// MarshalText lets AggFunc appear by name in config files.
func (f AggFunc) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *AggFunc) UnmarshalText(b []byte) error {
	v, err := ParseAggFunc(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Aggregate groups the rows of t by the key column and reduces every other
// numeric column with fn. The result has one row per distinct key, in the
// order keys are first seen, and the keys as its index. Rows whose key is
// missing are dropped.
func Aggregate(t *table.Table, key string, fn AggFunc) (*table.Table, error) {
	keyCol, err := t.Column(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table.StageAggregate, err)
	}

	var values []string
	for _, name := range t.NamesOf(table.Numeric) {
		if name != key {
			values = append(values, name)
		}
	}
	if err := table.RequireNumeric(table.StageAggregate, values, 0); err != nil {
		return nil, err
	}

	// Partition row positions by key, remembering first-seen order.
	groups := make(map[string][]int)
	var order []string
	for i := 0; i < t.NumRows(); i++ {
		if keyCol.IsMissing(i) {
			continue
		}
		k := keyCol.Label(i)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	cols := make([]table.Column, len(values))
	for j, name := range values {
		src, _ := t.Column(name)
		out := make([]float64, len(order))
		buf := make([]float64, 0, t.NumRows())
		for g, k := range order {
			buf = buf[:0]
			for _, i := range groups[k] {
				buf = append(buf, src.Floats[i])
			}
			out[g] = fn.Apply(buf)
		}
		cols[j] = table.Column{Name: name, Kind: table.Numeric, Floats: out}
	}
	return table.NewIndexed(table.Index{Name: key, Labels: order}, cols...)
}
