package pipeline

import (
	"fmt"

	"electviz/pkg/dataprep"
	"electviz/pkg/model"
	"electviz/pkg/table"
)

// Stage is one table-to-table step.
type Stage interface {
	Name() string
	Apply(t *table.Table) (*table.Table, error)
}

// Pipeline chains multiple stages.
type Pipeline struct {
	steps []Stage
	// observe, when set, is called after every successful stage.
	observe func(s Stage, out *table.Table)
}

func NewPipeline(steps ...Stage) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run feeds t through every stage in order and stops at the first error,
// which is returned wrapped with the stage name.
func (p *Pipeline) Run(t *table.Table) (*table.Table, error) {
	for _, step := range p.steps {
		out, err := step.Apply(t)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", step.Name(), err)
		}
		if p.observe != nil {
			p.observe(step, out)
		}
		t = out
	}
	return t, nil
}

type aggregateStage struct {
	key string
	fn  dataprep.AggFunc
}

func (s aggregateStage) Name() string { return "aggregate" }

func (s aggregateStage) Apply(t *table.Table) (*table.Table, error) {
	return dataprep.Aggregate(t, s.key, s.fn)
}

// Aggregate groups by key and reduces with fn.
func Aggregate(key string, fn dataprep.AggFunc) Stage { return aggregateStage{key, fn} }

type filterStage struct{ threshold float64 }

func (s filterStage) Name() string { return "filter" }

func (s filterStage) Apply(t *table.Table) (*table.Table, error) {
	return dataprep.FilterSparse(t, s.threshold)
}

// FilterSparse drops numeric columns whose sum is at or below threshold.
func FilterSparse(threshold float64) Stage { return filterStage{threshold} }

type fillStage struct{ strategy dataprep.FillStrategy }

func (s fillStage) Name() string { return "fill" }

func (s fillStage) Apply(t *table.Table) (*table.Table, error) {
	return dataprep.FillMissing(t, s.strategy)
}

// Fill replaces missing values.
func Fill(strategy dataprep.FillStrategy) Stage { return fillStage{strategy} }

type funcStage struct {
	name string
	fn   func(*table.Table) (*table.Table, error)
}

func (s funcStage) Name() string { return s.name }

func (s funcStage) Apply(t *table.Table) (*table.Table, error) { return s.fn(t) }

// Transpose swaps rows and columns.
func Transpose() Stage {
	return funcStage{"transpose", (*table.Table).Transpose}
}

// ResetIndex turns the row index into a leading column.
func ResetIndex() Stage {
	return funcStage{"reset-index", (*table.Table).ResetIndex}
}

// ReduceStage projects onto principal components and keeps the fitted
// model for inspection.
type ReduceStage struct {
	K    int
	Meta []string
	Opts []model.Option

	PCA *model.PCA
}

func (s *ReduceStage) Name() string { return "reduce" }

func (s *ReduceStage) Apply(t *table.Table) (*table.Table, error) {
	out, pca, err := model.ReduceModel(t, s.K, s.Meta, s.Opts...)
	if err != nil {
		return nil, err
	}
	s.PCA = pca
	return out, nil
}
