package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownColumn is returned when a referenced column does not exist.
	ErrUnknownColumn = errors.New("table: unknown column")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("table: duplicate column name")

	// ErrRowMismatch is returned when columns (or the index) differ in length.
	ErrRowMismatch = errors.New("table: column lengths differ")

	// ErrNotNumeric is returned by operations that need every column to be numeric.
	ErrNotNumeric = errors.New("table: column is not numeric")

	// ErrInsufficientNumericColumns is matched by every InsufficientColumnsError.
	ErrInsufficientNumericColumns = errors.New("table: not enough numeric columns")
)

// MinNumericColumns is the number of numeric columns a stage needs to
// produce a joint variance structure.
const MinNumericColumns = 2

// InsufficientColumnsError reports a stage that was left with fewer than
// MinNumericColumns numeric columns.
type InsufficientColumnsError struct {
	Stage     string
	Available []string
	// Threshold is only meaningful for the sparsity filter.
	Threshold float64
}

func (e *InsufficientColumnsError) Error() string {
	msg := fmt.Sprintf("%s: not enough numeric columns (have %d [%s], need %d)",
		e.Stage, len(e.Available), strings.Join(e.Available, ", "), MinNumericColumns)
	if e.Stage == StageFilter {
		msg += fmt.Sprintf(" at threshold %g", e.Threshold)
	}
	return msg
}

func (e *InsufficientColumnsError) Is(target error) bool {
	return target == ErrInsufficientNumericColumns
}

// Stage names carried by InsufficientColumnsError.
const (
	StageAggregate = "aggregate"
	StageFilter    = "filter"
	StageReduce    = "reduce"
)

// RequireNumeric returns an InsufficientColumnsError for stage when names
// holds fewer than MinNumericColumns entries.
func RequireNumeric(stage string, names []string, threshold float64) error {
	if len(names) >= MinNumericColumns {
		return nil
	}
	available := make([]string, len(names))
	copy(available, names)
	return &InsufficientColumnsError{Stage: stage, Available: available, Threshold: threshold}
}
