// Package config provides the configuration management for fibbench.
// It defines the configuration structure, parses command-line flags, applies
// FIBBENCH_* environment overrides and validates the result.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibbench/internal/chart"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
)

// EnvPrefix is the prefix for all environment variables read by fibbench.
const EnvPrefix = "FIBBENCH_"

// Default configuration values.
const (
	// DefaultSizes is the default sweep, as a flag value.
	DefaultSizes = "10,20,30,35,40,45"
	// DefaultPlot is the default chart output.
	DefaultPlot = chart.DefaultOutput
	// DefaultLogLevel keeps diagnostics to warnings and errors.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the parameters of a benchmark run.
type AppConfig struct {
	// Sizes is the ordered list of Fibonacci indices to sweep.
	Sizes []uint64
	// N is the index of a single run. Only meaningful when SingleRun is set.
	N uint64
	// SingleRun reports that -n (or FIBBENCH_N) was given: the sweep covers
	// [N] only and no chart is rendered.
	SingleRun bool
	// MaxDepth bounds the call depth of the naive recursive variant.
	MaxDepth int
	// PlotOutputs lists the chart files to write.
	PlotOutputs []string
	// NoPlot disables chart rendering.
	NoPlot bool
	// Metrics prints the Prometheus text exposition after the sweep.
	Metrics bool
	// LogLevel is the zerolog level name used for stderr diagnostics.
	LogLevel string
	// NoColor disables colored output. NO_COLOR is honoured as well.
	NoColor bool
	// Timeout bounds the whole sweep. Zero means no limit.
	Timeout time.Duration
}

// ToOptions converts the configuration into fibonacci.Options.
func (c AppConfig) ToOptions() fibonacci.Options {
	return fibonacci.Options{MaxDepth: c.MaxDepth}
}

// RenderChart reports whether a chart should be written after the sweep.
func (c AppConfig) RenderChart() bool {
	return !c.NoPlot && !c.SingleRun
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError or ValidationError if the configuration is
//     invalid, nil otherwise.
func (c AppConfig) Validate() error {
	if len(c.Sizes) == 0 {
		return apperrors.NewConfigError("at least one input size is required")
	}
	if c.MaxDepth <= 0 {
		return apperrors.NewConfigError("max depth must be strictly positive: %d", c.MaxDepth)
	}
	if c.MaxDepth > fibonacci.MaxAllowedDepth {
		return apperrors.NewValidationError("max-depth",
			fmt.Sprintf("must not exceed %d", fibonacci.MaxAllowedDepth), c.MaxDepth)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout cannot be negative: %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewValidationError("log-level", err.Error(), c.LogLevel)
	}
	if c.RenderChart() {
		if len(c.PlotOutputs) == 0 {
			return apperrors.NewConfigError("no chart output given (use -no-plot to disable the chart)")
		}
		for _, out := range c.PlotOutputs {
			if err := chart.ValidateOutput(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseSizes parses a comma-separated list of Fibonacci indices. The order
// is kept and duplicates are allowed.
//
// Returns:
//   - []uint64: The parsed sizes.
//   - error: A ValidationError naming the first invalid entry.
func ParseSizes(s string) ([]uint64, error) {
	var sizes []uint64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("sizes", fmt.Sprintf("%q is not a non-negative integer", field), field)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, apperrors.NewValidationError("sizes", "empty list", s)
	}
	return sizes, nil
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

// rawFlags holds the flag values that need post-processing.
type rawFlags struct {
	sizes string
	plot  string
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for flags not given explicitly and validates the
// result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Destination of parsing errors and usage information.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError/ValidationError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	raw := rawFlags{}
	fs.StringVar(&raw.sizes, "sizes", DefaultSizes, "Comma-separated Fibonacci indices to sweep, in order.")
	fs.Uint64Var(&config.N, "n", 0, "Benchmark a single index (no chart).")
	fs.IntVar(&config.MaxDepth, "max-depth", fibonacci.DefaultMaxDepth, "Recursion limit of the unoptimized variant.")
	fs.StringVar(&raw.plot, "plot", DefaultPlot, "Comma-separated chart files; the extension selects the format.")
	fs.BoolVar(&config.NoPlot, "no-plot", false, "Do not render the chart.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print Prometheus metrics after the sweep.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostics level: debug, info, warn, error.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Abort the sweep after this duration (0 for no limit).")
	fs.Bool("version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, reportError(errorWriter, fs,
			apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	if err := applyEnvOverrides(&config, &raw, fs); err != nil {
		return AppConfig{}, reportError(errorWriter, fs, err)
	}

	config.PlotOutputs = splitList(raw.plot)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if config.SingleRun {
		config.Sizes = []uint64{config.N}
	} else {
		sizes, err := ParseSizes(raw.sizes)
		if err != nil {
			return AppConfig{}, reportError(errorWriter, fs, err)
		}
		config.Sizes = sizes
	}

	if err := config.Validate(); err != nil {
		return AppConfig{}, reportError(errorWriter, fs, err)
	}
	return config, nil
}

// reportError prints err followed by the usage text and returns err.
func reportError(w io.Writer, fs *flag.FlagSet, err error) error {
	fmt.Fprintln(w, "Configuration error:", err)
	fs.Usage()
	return err
}
