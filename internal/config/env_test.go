package config

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"
	"time"
)

// t.Setenv forbids t.Parallel, so these tests run sequentially.

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIBBENCH_SIZES", "1,2,3")
	t.Setenv("FIBBENCH_MAX_DEPTH", "77")
	t.Setenv("FIBBENCH_PLOT", "env.svg")
	t.Setenv("FIBBENCH_METRICS", "yes")
	t.Setenv("FIBBENCH_LOG_LEVEL", "info")
	t.Setenv("FIBBENCH_NO_COLOR", "1")
	t.Setenv("FIBBENCH_TIMEOUT", "2m")

	cfg, err := ParseConfig("fibbench", nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !slices.Equal(cfg.Sizes, []uint64{1, 2, 3}) {
		t.Errorf("Expected sizes from env, got %v", cfg.Sizes)
	}
	if cfg.MaxDepth != 77 {
		t.Errorf("Expected max depth 77, got %d", cfg.MaxDepth)
	}
	if !slices.Equal(cfg.PlotOutputs, []string{"env.svg"}) {
		t.Errorf("Expected plot from env, got %v", cfg.PlotOutputs)
	}
	if !cfg.Metrics || !cfg.NoColor || cfg.LogLevel != "info" || cfg.Timeout != 2*time.Minute {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestFlagsTakePriorityOverEnv(t *testing.T) {
	t.Setenv("FIBBENCH_SIZES", "1,2,3")
	t.Setenv("FIBBENCH_MAX_DEPTH", "77")
	t.Setenv("FIBBENCH_METRICS", "true")

	cfg, err := ParseConfig("fibbench", []string{"-sizes", "9", "-max-depth", "12", "-metrics=false"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !slices.Equal(cfg.Sizes, []uint64{9}) || cfg.MaxDepth != 12 || cfg.Metrics {
		t.Errorf("flags should win over env: %+v", cfg)
	}
}

func TestEnvSingleRun(t *testing.T) {
	t.Setenv("FIBBENCH_N", "30")
	cfg, err := ParseConfig("fibbench", nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.SingleRun || !slices.Equal(cfg.Sizes, []uint64{30}) {
		t.Errorf("Expected single run of 30, got %+v", cfg)
	}
}

func TestEnvSingleRunInvalid(t *testing.T) {
	t.Setenv("FIBBENCH_N", "thirty")
	var errBuf bytes.Buffer
	if _, err := ParseConfig("fibbench", nil, &errBuf); err == nil {
		t.Fatal("expected an error for an invalid FIBBENCH_N")
	}
	if got := errBuf.String(); !strings.Contains(got, "Configuration error:") || !strings.Contains(got, "FIBBENCH_N") {
		t.Errorf("expected the FIBBENCH_N error on the error writer, got %q", got)
	}
}

func TestEnvInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("FIBBENCH_MAX_DEPTH", "deep")
	t.Setenv("FIBBENCH_TIMEOUT", "soon")
	cfg, err := ParseConfig("fibbench", nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.MaxDepth != 1000 || cfg.Timeout != 0 {
		t.Errorf("invalid env values should keep defaults: %+v", cfg)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"No", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Setenv("FIBBENCH_TEST_BOOL", tt.val)
		if got := getEnvBool("TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}
