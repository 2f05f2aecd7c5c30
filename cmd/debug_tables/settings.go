package main

import (
	"fmt"
	"os"

	"github.com/pyhub-apps/pdftables-go"
	"gopkg.in/yaml.v2"
)

// runConfig is a single named batch-run entry: a label plus the subset of
// spec.md §6's settings table worth overriding from a YAML file, so ad hoc
// strategy comparisons (see main.go's hardcoded "strategies" slice) can
// instead be driven from a checked-in file without recompiling.
type runConfig struct {
	Name               string  `yaml:"name"`
	VerticalStrategy   string  `yaml:"vertical_strategy"`
	HorizontalStrategy string  `yaml:"horizontal_strategy"`
	SnapXTolerance     float64 `yaml:"snap_x_tolerance"`
	SnapYTolerance     float64 `yaml:"snap_y_tolerance"`
	JoinXTolerance     float64 `yaml:"join_x_tolerance"`
	JoinYTolerance     float64 `yaml:"join_y_tolerance"`
	IncludeSingleCell  bool    `yaml:"include_single_cell"`
}

// batchConfig is the top-level shape of a debug_tables YAML settings file:
// a list of named runs, each applied in turn against the same page.
type batchConfig struct {
	Runs []runConfig `yaml:"runs"`
}

func loadBatchConfig(path string) (*batchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("debug_tables: read config: %w", err)
	}
	var cfg batchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("debug_tables: parse config: %w", err)
	}
	return &cfg, nil
}

func parseStrategy(name string) pdftables.Strategy {
	switch name {
	case "lines":
		return pdftables.Lines
	case "text":
		return pdftables.Text
	default:
		return pdftables.LinesStrict
	}
}

// toOptions turns a single YAML run entry into the pdftables.Option set
// main() passes to pdftables.NewSettings, defaulting zero-value tolerances
// to the spec.md §6 defaults rather than to zero.
func (r runConfig) toOptions() []pdftables.Option {
	defaults := pdftables.DefaultSettings()
	opts := []pdftables.Option{
		pdftables.WithVerticalStrategy(parseStrategy(r.VerticalStrategy)),
		pdftables.WithHorizontalStrategy(parseStrategy(r.HorizontalStrategy)),
		pdftables.WithIncludeSingleCell(r.IncludeSingleCell),
	}

	snapX, snapY := r.SnapXTolerance, r.SnapYTolerance
	if snapX == 0 {
		snapX = defaults.SnapXTolerance
	}
	if snapY == 0 {
		snapY = defaults.SnapYTolerance
	}
	opts = append(opts, pdftables.WithSnapTolerance(snapX, snapY))

	joinX, joinY := r.JoinXTolerance, r.JoinYTolerance
	if joinX == 0 {
		joinX = defaults.JoinXTolerance
	}
	if joinY == 0 {
		joinY = defaults.JoinYTolerance
	}
	opts = append(opts, pdftables.WithJoinTolerance(joinX, joinY))

	return opts
}
