package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"electviz/pkg/table"
)

// Schema describes the structure of a dataset.
type Schema struct {
	FeatureNames []string
	Types        []string // "numeric" or "categorical"
}

// SchemaOf returns the schema of t.
func SchemaOf(t *table.Table) Schema {
	var s Schema
	for _, c := range t.Columns() {
		s.FeatureNames = append(s.FeatureNames, c.Name)
		s.Types = append(s.Types, c.Kind.String())
	}
	return s
}

func (s Schema) String() string {
	parts := make([]string, len(s.FeatureNames))
	for i, n := range s.FeatureNames {
		parts[i] = fmt.Sprintf("%s:%s", n, s.Types[i])
	}
	return strings.Join(parts, ", ")
}

// LogValue renders the schema compactly in log records.
func (s Schema) LogValue() slog.Value {
	return slog.StringValue(s.String())
}
