package app

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/ui"
)

// Run drives the process-wide allocation tracker and theme, so the tests
// calling it do not run in parallel.

func restoreTheme(t *testing.T) {
	t.Helper()
	saved := ui.GetCurrentTheme()
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })
}

func newApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"fibbench", "-no-color"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New() failed: %v\n%s", err, errBuf.String())
	}
	return a, &errBuf
}

type brokenCalculator struct{}

func (brokenCalculator) Name() string                     { return "broken" }
func (brokenCalculator) Compute(uint64) (*big.Int, error) { return nil, errors.New("broken") }

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		a, _ := newApp(t)
		if len(a.Config.Sizes) != 6 {
			t.Errorf("expected the default sweep, got %v", a.Config.Sizes)
		}
		if keys := a.Registry.Keys(); len(keys) < 3 || keys[0] != "recursive" || keys[1] != "memoized" || keys[2] != "iterative" {
			t.Errorf("unexpected variants %v", keys)
		}
		if a.Logger == nil || a.Metrics == nil {
			t.Error("logger and metrics registry must be set")
		}
	})

	t.Run("MaxDepthReachesCalculator", func(t *testing.T) {
		a, _ := newApp(t, "-max-depth", "42")
		v, err := a.Registry.Get("recursive")
		if err != nil {
			t.Fatal(err)
		}
		if got := v.Calculator.(*fibonacci.Recursive).MaxDepth(); got != 42 {
			t.Errorf("MaxDepth() = %d, want 42", got)
		}
	})

	t.Run("Help", func(t *testing.T) {
		_, err := New([]string{"fibbench", "-help"}, &bytes.Buffer{})
		if !IsHelpError(err) {
			t.Errorf("expected a help error, got %v", err)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		var errBuf bytes.Buffer
		_, err := New([]string{"fibbench", "-sizes", "a,b"}, &errBuf)
		if err == nil || IsHelpError(err) {
			t.Fatalf("expected a configuration error, got %v", err)
		}
		if !strings.Contains(errBuf.String(), "Configuration error:") {
			t.Errorf("expected the error on the error writer, got %q", errBuf.String())
		}
	})

	t.Run("InvalidEnv", func(t *testing.T) {
		t.Setenv("FIBBENCH_N", "abc")
		var errBuf bytes.Buffer
		_, err := New([]string{"fibbench"}, &errBuf)
		if err == nil {
			t.Fatal("expected an error for FIBBENCH_N=abc")
		}
		if got := errBuf.String(); !strings.Contains(got, "Configuration error:") || !strings.Contains(got, "FIBBENCH_N") {
			t.Errorf("expected the FIBBENCH_N error on the error writer, got %q", got)
		}
	})

	t.Run("DepthAboveCeiling", func(t *testing.T) {
		var errBuf bytes.Buffer
		_, err := New([]string{"fibbench", "-max-depth", "50000000", "-n", "60000000"}, &errBuf)
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) || valErr.Field != "max-depth" {
			t.Fatalf("expected a max-depth validation error, got %v", err)
		}
	})
}

func TestRunSingle(t *testing.T) {
	restoreTheme(t)
	a, errBuf := newApp(t, "-n", "10")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, errBuf.String())
	}
	got := out.String()
	if !strings.HasPrefix(got, "Testing Fibonacci for n = 10\n") {
		t.Errorf("single run should start with the progress line, got:\n%s", got)
	}
	if c := strings.Count(got, "Result: 55\n"); c != 3 {
		t.Errorf("expected 3 results of 55, got %d", c)
	}
	for _, unwanted := range []string{"Comparison Summary", "Rendering chart", "Benchmark Configuration"} {
		if strings.Contains(got, unwanted) || strings.Contains(errBuf.String(), unwanted) {
			t.Errorf("single run printed %q", unwanted)
		}
	}
}

func TestRunSweepWithChartAndMetrics(t *testing.T) {
	restoreTheme(t)
	dir := t.TempDir()
	png := filepath.Join(dir, "perf.png")
	svg := filepath.Join(dir, "perf.svg")
	a, errBuf := newApp(t, "-sizes", "5,10,15", "-plot", png+","+svg, "-metrics")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, errBuf.String())
	}
	got := out.String()
	for _, want := range []string{"--- Benchmark Configuration ---", "✓ Rendering chart"} {
		if !strings.Contains(errBuf.String(), want) {
			t.Errorf("stderr missing %q", want)
		}
		if strings.Contains(got, want) {
			t.Errorf("stdout should not contain %q", want)
		}
	}
	for _, want := range []string{
		"Testing Fibonacci for n = 15\n",
		"--- Comparison Summary ---",
		"Chart saved to: " + png,
		"fibbench_probe_duration_seconds",
		"fibbench_probe_peak_bytes",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, f := range []string{png, svg} {
		if info, err := os.Stat(f); err != nil || info.Size() == 0 {
			t.Errorf("chart %s not written: %v", f, err)
		}
	}
}

func TestRunNoPlot(t *testing.T) {
	restoreTheme(t)
	dir := t.TempDir()
	chart := filepath.Join(dir, "never.png")
	a, _ := newApp(t, "-sizes", "3", "-plot", chart, "-no-plot")

	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if _, err := os.Stat(chart); !os.IsNotExist(err) {
		t.Errorf("chart written despite -no-plot: %v", err)
	}
}

func TestRunCanceled(t *testing.T) {
	restoreTheme(t)
	a, errBuf := newApp(t, "-sizes", "10", "-no-plot")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if !strings.Contains(errBuf.String(), "Status: Canceled.") {
		t.Errorf("missing cancellation status in %q", errBuf.String())
	}
	if strings.Contains(out.String(), "Result:") {
		t.Error("no probe should run after cancellation")
	}
}

func TestRunTimeout(t *testing.T) {
	restoreTheme(t)
	a, errBuf := newApp(t, "-sizes", "10", "-no-plot", "-timeout", "1ns")

	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code %d, want %d (stderr %q)", code, apperrors.ExitErrorTimeout, errBuf.String())
	}
}

func TestRunFatalProbeError(t *testing.T) {
	restoreTheme(t)
	a, errBuf := newApp(t, "-sizes", "1,2", "-no-plot")
	a.Registry = fibonacci.NewRegistryFromVariants(
		fibonacci.Variant{Key: "broken", Label: "Broken", Role: fibonacci.RoleBaseline, Calculator: brokenCalculator{}},
	)

	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(errBuf.String(), "Broken failed for n=1") {
		t.Errorf("stderr should name the failed probe, got %q", errBuf.String())
	}
}

func TestRunRecursionLimit(t *testing.T) {
	restoreTheme(t)
	a, errBuf := newApp(t, "-sizes", "10,40", "-max-depth", "20", "-no-plot")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), fibonacci.LabelRecursive+" exceeded recursion limit.\n") {
		t.Error("missing recursion limit message")
	}
	if !strings.Contains(errBuf.String(), "recursion limit reached") {
		t.Errorf("expected a warning log, got %q", errBuf.String())
	}
}

func TestSetupLifecycle(t *testing.T) {
	ctx, lc := SetupLifecycle(context.Background(), time.Hour)
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a deadline")
	}
	lc.Cleanup()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled by Cleanup")
	}
}

func TestSetupSignals(t *testing.T) {
	ctx, stop := SetupSignals(context.Background())
	if ctx.Err() != nil {
		t.Fatal("context canceled too early")
	}
	stop()
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled after stop, got %v", ctx.Err())
	}
}

func TestRunLogsObservers(t *testing.T) {
	restoreTheme(t)
	a, errBuf := newApp(t, "-n", "5", "-metrics", "-log-level", "debug")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr: %s", code, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "observers=2") {
		t.Errorf("expected the logging and metrics observers in the startup event, got:\n%s", errBuf.String())
	}
	if !strings.Contains(out.String(), "fibbench_probe_duration_seconds") {
		t.Error("metrics observer registered through the subject did not record")
	}
}
