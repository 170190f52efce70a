package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// lookupEnvUint64 parses EnvPrefix+key as uint64. ok is false when the
// variable is unset; an unparsable value is an error.
func lookupEnvUint64(key string) (value uint64, ok bool, err error) {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return 0, false, nil
	}
	parsed, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return 0, false, apperrors.NewValidationError(EnvPrefix+key, "not a non-negative integer", val)
	}
	return parsed, true, nil
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns EnvPrefix+key parsed as bool, or defaultVal if unset.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns EnvPrefix+key parsed as time.Duration, or
// defaultVal if unset or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment values to every flag not given on
// the command line. Priority: CLI flags > environment variables > defaults.
//
// Supported environment variables:
//   - FIBBENCH_SIZES: Comma-separated input sizes (string)
//   - FIBBENCH_N: Single-run index (uint64)
//   - FIBBENCH_MAX_DEPTH: Recursion limit (int)
//   - FIBBENCH_PLOT: Comma-separated chart outputs (string)
//   - FIBBENCH_NO_PLOT: Disable the chart (bool: true/false, 1/0, yes/no)
//   - FIBBENCH_METRICS: Print Prometheus metrics (bool)
//   - FIBBENCH_LOG_LEVEL: Diagnostics level (string)
//   - FIBBENCH_NO_COLOR: Disable colored output (bool)
//   - FIBBENCH_TIMEOUT: Sweep time limit (duration: "5m", "30s")
func applyEnvOverrides(config *AppConfig, raw *rawFlags, fs *flag.FlagSet) error {
	if isFlagSet(fs, "n") {
		config.SingleRun = true
	} else {
		n, ok, err := lookupEnvUint64("N")
		if err != nil {
			return err
		}
		if ok {
			config.N, config.SingleRun = n, true
		}
	}
	if !isFlagSet(fs, "max-depth") {
		config.MaxDepth = getEnvInt("MAX_DEPTH", config.MaxDepth)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	applyStringOverrides(config, raw, fs)
	applyBooleanOverrides(config, fs)
	return nil
}

func applyStringOverrides(config *AppConfig, raw *rawFlags, fs *flag.FlagSet) {
	if !isFlagSet(fs, "sizes") {
		raw.sizes = getEnvString("SIZES", raw.sizes)
	}
	if !isFlagSet(fs, "plot") {
		raw.plot = getEnvString("PLOT", raw.plot)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "no-plot") {
		config.NoPlot = getEnvBool("NO_PLOT", config.NoPlot)
	}
	if !isFlagSet(fs, "metrics") {
		config.Metrics = getEnvBool("METRICS", config.Metrics)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
