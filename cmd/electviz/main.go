package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"electviz/pkg/chart"
	"electviz/pkg/data"
	"electviz/pkg/dataprep"
	"electviz/pkg/pipeline"
	"electviz/pkg/table"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --input           : Path to the results file (.csv, .xls, .xlsx). Required.
// --config          : Optional YAML file with pipeline settings; flags override it.
// --mode            : "columns" (one point per group, e.g. city) or "transposed" (one point per party)
// --group-by        : Column to group rows by. Default = city_name
// --agg             : sum, mean, count, min, max or median (columns mode only)
// --threshold       : Drop numeric columns whose total is <= threshold. Default = 1000
// --components      : Number of principal components. Default = 2
// --fill            : Missing-value fill before reduction: none, mean, median, zero
// --allow-nonfinite : Let constant columns / missing values produce NaN scores instead of failing
// --output          : Write the reduced table as CSV to this path
// --plot            : Write a scatter chart (.png, .svg, .pdf) to this path
// --preview         : Number of reduced rows to print
// --log-level       : debug, info, warn or error
//
// Example:
//   go run ./cmd/electviz --input results.csv --mode transposed --threshold 1000 --plot parties.png
//
// -------------------------------------------------------
//

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "electviz:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("electviz", flag.ContinueOnError)
	inputPath := fs.String("input", "", "Path to input .csv, .xls or .xlsx file")
	configPath := fs.String("config", "", "Path to YAML pipeline config")
	mode := fs.String("mode", "", "Processing mode: columns or transposed")
	groupBy := fs.String("group-by", "", "Column to group by")
	agg := fs.String("agg", "", "Aggregation function: sum, mean, count, min, max, median")
	threshold := fs.Float64("threshold", 0, "Threshold for sparse column removal")
	components := fs.Int("components", 0, "Number of principal components")
	fill := fs.String("fill", "", "Missing value fill: none, mean, median, zero")
	allowNonFinite := fs.Bool("allow-nonfinite", false, "Propagate NaN instead of failing on constant columns")
	outputPath := fs.String("output", "", "Path to save the reduced table as CSV")
	plotPath := fs.String("plot", "", "Path to save the scatter chart")
	previewRows := fs.Int("preview", 5, "Number of rows to preview on stdout")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *inputPath == "" {
		return fmt.Errorf("--input is required")
	}

	// ---- Config: defaults, then file, then explicit flags ----
	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			return err
		}
		cfg, err = pipeline.LoadConfig(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "mode":
			cfg.Mode, err = pipeline.ParseMode(*mode)
		case "group-by":
			cfg.GroupBy = *groupBy
		case "agg":
			cfg.Agg, err = dataprep.ParseAggFunc(*agg)
		case "threshold":
			cfg.Threshold = *threshold
		case "components":
			cfg.Components = *components
		case "fill":
			cfg.Fill, err = dataprep.ParseFillStrategy(*fill)
		case "allow-nonfinite":
			cfg.AllowNonFinite = *allowNonFinite
		}
	})
	if err != nil {
		return err
	}

	// ---- Load ----
	t, err := data.Load(*inputPath)
	if err != nil {
		return err
	}
	logger.Info("loaded dataset", slog.String("path", *inputPath),
		slog.Int("rows", t.NumRows()), slog.Int("cols", t.NumCols()))

	// ---- Reduce ----
	res, err := pipeline.NewRunner(cfg, logger).Run(t)
	if err != nil {
		return err
	}
	logger.Info("reduced dataset", slog.String("mode", string(cfg.Mode)),
		slog.Int("rows", res.Reduced.NumRows()), slog.Any("explained_variance", res.Explained))

	// ---- Output ----
	preview(stdout, res.Reduced, *previewRows)

	if *outputPath != "" {
		if err := writeCSV(*outputPath, res.Reduced); err != nil {
			return err
		}
		logger.Info("reduced data saved", slog.String("path", *outputPath))
	}

	if *plotPath != "" {
		title := fmt.Sprintf("Dimensionality Reduction (%s)", cfg.Mode)
		p, err := chart.Scatter(res.Reduced, chart.Options{X: res.X, Y: res.Y, Label: res.Label, Title: title})
		if err != nil {
			return err
		}
		if err := chart.Save(p, *plotPath, 8, 6); err != nil {
			return err
		}
		logger.Info("chart saved", slog.String("path", *plotPath))
	}
	return nil
}

// preview prints the first n rows of t.
func preview(w io.Writer, t *table.Table, n int) {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	if n <= 0 {
		return
	}
	cols := t.Columns()
	for _, c := range cols {
		fmt.Fprintf(w, "%-15s", c.Name)
	}
	fmt.Fprintln(w)
	for i := 0; i < n; i++ {
		for _, c := range cols {
			if c.Kind == table.Numeric {
				fmt.Fprintf(w, "%-15.6f", c.Floats[i])
			} else {
				fmt.Fprintf(w, "%-15s", c.Strings[i])
			}
		}
		fmt.Fprintln(w)
	}
}

func writeCSV(path string, t *table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Names()); err != nil {
		return err
	}
	cols := t.Columns()
	row := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range cols {
			if c.Kind == table.Numeric {
				row[j] = strconv.FormatFloat(c.Floats[i], 'f', 6, 64)
			} else {
				row[j] = c.Strings[i]
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
