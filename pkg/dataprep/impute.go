package dataprep

import (
	"fmt"
	"math"
	"strings"

	"electviz/pkg/stats"
	"electviz/pkg/table"
)

// FillStrategy selects the replacement for missing numeric values.
type FillStrategy int

const (
	FillNone FillStrategy = iota
	FillMean
	FillMedian
	FillZero
)

// UnknownCategory replaces missing categorical values.
const UnknownCategory = "Unknown"

var fillNames = [...]string{
	FillNone:   "none",
	FillMean:   "mean",
	FillMedian: "median",
	FillZero:   "zero",
}

func (s FillStrategy) String() string {
	if s >= 0 && int(s) < len(fillNames) {
		return fillNames[s]
	}
	return fmt.Sprintf("FillStrategy(%d)", int(s))
}

// ParseFillStrategy maps "none", "mean", "median" or "zero" to a strategy.
func ParseFillStrategy(name string) (FillStrategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, v := range fillNames {
		if v == n {
			return FillStrategy(s), nil
		}
	}
	return 0, fmt.Errorf("dataprep: unknown fill strategy %q", name)
}

func (s FillStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *FillStrategy) UnmarshalText(b []byte) error {
	v, err := ParseFillStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// FillMissing returns a copy of t with missing numeric cells replaced per
// strategy and missing categorical cells set to UnknownCategory. A numeric
// column with no values at all stays missing under FillMean and FillMedian.
// FillNone returns t unchanged.
func FillMissing(t *table.Table, strategy FillStrategy) (*table.Table, error) {
	if strategy == FillNone {
		return t, nil
	}
	cols := t.Columns()
	for j, c := range cols {
		if c.Kind == table.Categorical {
			for i, v := range c.Strings {
				if v == "" {
					c.Strings[i] = UnknownCategory
				}
			}
			continue
		}
		var fill float64
		switch strategy {
		case FillMean:
			fill = stats.Mean(c.Floats)
		case FillMedian:
			fill = stats.Median(c.Floats)
		}
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				c.Floats[i] = fill
			}
		}
		cols[j] = c
	}
	if idx := t.Index(); idx != nil {
		return table.NewIndexed(*idx, cols...)
	}
	return table.New(cols...)
}
