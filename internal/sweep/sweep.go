// Package sweep runs every registered Fibonacci variant over an ordered list
// of input sizes and collects the elapsed times into index-aligned series.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/probe"
)

const tracerName = "github.com/agbru/fibbench/internal/sweep"

// VariantSeries holds the timings of one variant across the sweep.
type VariantSeries struct {
	Key   string
	Label string
	Role  fibonacci.Role
	// Seconds has one entry per swept size. Skipped probes are NaN.
	Seconds []float64
	// Skipped counts the sizes where the recursion limit was hit.
	Skipped int
}

// Runs returns the number of completed probes.
func (v VariantSeries) Runs() int { return len(v.Seconds) - v.Skipped }

// Result is the outcome of a sweep.
//
// Unoptimized, Memoized and Baseline alias the series of the first variant
// holding the corresponding role. Every series has len(Sizes) entries.
type Result struct {
	Sizes       []uint64
	Unoptimized []float64
	Memoized    []float64
	Baseline    []float64
	// Variants lists every variant in probing order.
	Variants []VariantSeries
}

// Driver sequences probes over input sizes.
type Driver struct {
	registry *fibonacci.Registry
	probe    *probe.Probe
	out      io.Writer
	logger   logging.Logger
}

// NewDriver creates a sweep driver.
//
// Parameters:
//   - registry: The variants to probe, in probing order.
//   - p: The probe printing the per-measurement reports.
//   - out: Destination of the progress lines (usually the probe's writer).
//   - logger: Diagnostics logger; nil selects a no-op logger.
func NewDriver(registry *fibonacci.Registry, p *probe.Probe, out io.Writer, logger logging.Logger) *Driver {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Driver{registry: registry, probe: p, out: out, logger: logger}
}

// Run probes every variant for each n in sizes, in order.
//
// A recursion-depth failure of the unoptimized variant is reported and
// recorded as NaN; the sweep then moves on. Any other failure aborts the
// sweep and is returned together with the partial result. Cancellation is
// checked between probes, never during one.
//
// Parameters:
//   - ctx: Cancels the sweep between two probes.
//   - sizes: The ordered input sizes.
//
// Returns:
//   - Result: The collected series (partial if err is non-nil).
//   - error: The first fatal failure, or the context error.
func (d *Driver) Run(ctx context.Context, sizes []uint64) (Result, error) {
	res := newResult(sizes, d.registry.Variants())
	tracer := otel.Tracer(tracerName)

	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return res.aliased(d.registry), err
		}
		fmt.Fprintf(d.out, "Testing Fibonacci for n = %d\n", n)

		spanCtx, span := tracer.Start(ctx, "sweep.size")
		span.SetAttributes(attribute.Int64("n", int64(n)))
		err := d.runSize(spanCtx, n, res.Variants)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if err != nil {
			return res.aliased(d.registry), err
		}
	}
	d.logger.Info("sweep completed", logging.Int("sizes", len(sizes)), logging.Int("variants", len(res.Variants)))
	return res.aliased(d.registry), nil
}

func (d *Driver) runSize(ctx context.Context, n uint64, series []VariantSeries) error {
	variants := d.registry.Variants()
	for i, v := range variants {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := d.probe.Measure(v.Calculator, n, v.Label)
		switch {
		case err == nil:
			series[i].Seconds = append(series[i].Seconds, m.Seconds)
		case v.Role == fibonacci.RoleUnoptimized && errors.Is(err, fibonacci.ErrRecursionDepthExceeded):
			fmt.Fprintf(d.out, "%s exceeded recursion limit.\n", v.Label)
			series[i].Seconds = append(series[i].Seconds, math.NaN())
			series[i].Skipped++
		default:
			return apperrors.WrapError(err, "sweep aborted at n=%d", n)
		}
	}
	return nil
}

func newResult(sizes []uint64, variants []fibonacci.Variant) *Result {
	res := &Result{
		Sizes:    append([]uint64(nil), sizes...),
		Variants: make([]VariantSeries, len(variants)),
	}
	for i, v := range variants {
		res.Variants[i] = VariantSeries{
			Key:     v.Key,
			Label:   v.Label,
			Role:    v.Role,
			Seconds: make([]float64, 0, len(sizes)),
		}
	}
	return res
}

func (r *Result) aliased(reg *fibonacci.Registry) Result {
	out := *r
	out.Unoptimized = r.seriesOf(reg, fibonacci.RoleUnoptimized)
	out.Memoized = r.seriesOf(reg, fibonacci.RoleMemoized)
	out.Baseline = r.seriesOf(reg, fibonacci.RoleBaseline)
	return out
}

func (r *Result) seriesOf(reg *fibonacci.Registry, role fibonacci.Role) []float64 {
	v, ok := reg.ByRole(role)
	if !ok {
		return nil
	}
	for _, s := range r.Variants {
		if s.Key == v.Key {
			return s.Seconds
		}
	}
	return nil
}
