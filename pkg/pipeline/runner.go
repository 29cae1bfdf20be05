package pipeline

import (
	"io"
	"log/slog"

	"electviz/pkg/dataprep"
	"electviz/pkg/model"
	"electviz/pkg/table"
)

// PartyLabel names the label column of a transposed run.
const PartyLabel = "party_name"

// Result is a reduced table plus the columns a chart should use.
type Result struct {
	Reduced *table.Table
	X, Y    string
	Label   string
	// Explained is the variance ratio of each component.
	Explained []float64
}

// Runner executes the configured pipeline.
type Runner struct {
	Config Config
	Logger *slog.Logger
}

func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Config: cfg, Logger: logger.With(slog.String("component", "pipeline"))}
}

// Run validates the config and reduces t in the configured mode.
func (r *Runner) Run(t *table.Table) (*Result, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseMode(string(r.Config.Mode))
	cfg := r.Config

	var opts []model.Option
	if cfg.AllowNonFinite {
		opts = append(opts, model.WithNonFinite(true))
	}

	var (
		steps  []Stage
		reduce *ReduceStage
		label  string
	)
	switch mode {
	case ModeTransposed:
		// Every row becomes one numeric column, so the table is first
		// summed per group regardless of the configured function.
		reduce = &ReduceStage{K: cfg.Components, Meta: []string{table.DefaultIndexName}, Opts: opts}
		steps = []Stage{
			Aggregate(cfg.GroupBy, dataprep.Sum),
			FilterSparse(cfg.Threshold),
			Transpose(),
			FilterSparse(cfg.Threshold),
			Fill(cfg.Fill),
			ResetIndex(),
			reduce,
		}
		label = PartyLabel
	default:
		reduce = &ReduceStage{K: cfg.Components, Meta: []string{cfg.GroupBy}, Opts: opts}
		steps = []Stage{
			Aggregate(cfg.GroupBy, cfg.Agg),
			FilterSparse(cfg.Threshold),
			Fill(cfg.Fill),
			ResetIndex(),
			reduce,
		}
		label = cfg.GroupBy
	}

	r.Logger.Debug("pipeline start",
		slog.String("mode", string(mode)),
		slog.Any("schema", SchemaOf(t)),
		slog.Int("rows", t.NumRows()))

	p := NewPipeline(steps...)
	p.observe = func(s Stage, out *table.Table) {
		r.Logger.Debug("stage done",
			slog.String("stage", s.Name()),
			slog.Int("rows", out.NumRows()),
			slog.Int("cols", out.NumCols()))
	}
	out, err := p.Run(t)
	if err != nil {
		r.Logger.Debug("pipeline failed", slog.String("error", err.Error()))
		return nil, err
	}

	if mode == ModeTransposed {
		out, err = withLabel(out, table.DefaultIndexName, PartyLabel)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{Reduced: out, Label: label, X: model.ComponentName(0), Y: model.ComponentName(0)}
	if cfg.Components > 1 {
		res.Y = model.ComponentName(1)
	}
	if reduce.PCA != nil {
		res.Explained = reduce.PCA.ExplainedVarianceRatio()
	}
	r.Logger.Debug("pipeline done", slog.Any("explained_variance", res.Explained))
	return res, nil
}

// withLabel appends a copy of column src named dst.
func withLabel(t *table.Table, src, dst string) (*table.Table, error) {
	c, err := t.Column(src)
	if err != nil {
		return nil, err
	}
	c.Name = dst
	return table.New(append(t.Columns(), c)...)
}
