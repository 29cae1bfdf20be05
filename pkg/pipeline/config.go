package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"electviz/pkg/dataprep"
)

// Mode selects how the table is oriented before reduction.
type Mode string

const (
	// ModeColumns reduces one point per group (e.g. per city).
	ModeColumns Mode = "columns"
	// ModeTransposed reduces one point per numeric column (e.g. per party).
	ModeTransposed Mode = "transposed"
)

var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Config holds every user-chosen pipeline parameter.
type Config struct {
	Mode           Mode                  `yaml:"mode"`
	GroupBy        string                `yaml:"group_by"`
	Agg            dataprep.AggFunc      `yaml:"agg"`
	Threshold      float64               `yaml:"threshold"`
	Components     int                   `yaml:"components"`
	Fill           dataprep.FillStrategy `yaml:"fill"`
	AllowNonFinite bool                  `yaml:"allow_nonfinite"`
}

// DefaultConfig mirrors the defaults of the interactive shell.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeColumns,
		GroupBy:    "city_name",
		Agg:        dataprep.Sum,
		Threshold:  1000,
		Components: 2,
		Fill:       dataprep.FillNone,
	}
}

// LoadConfig decodes YAML from r on top of DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Mode, _ = ParseMode(string(cfg.Mode))
	return cfg, nil
}

// ParseMode accepts the mode names plus the shell's "city-wise" and
// "party-wise" labels.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "columns", "city-wise", "city":
		return ModeColumns, nil
	case "transposed", "party-wise", "party":
		return ModeTransposed, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.GroupBy == "" {
		return fmt.Errorf("%w: group_by is empty", ErrInvalidConfig)
	}
	if c.Components < 1 {
		return fmt.Errorf("%w: components must be at least 1, got %d", ErrInvalidConfig, c.Components)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be non-negative, got %g", ErrInvalidConfig, c.Threshold)
	}
	return nil
}
