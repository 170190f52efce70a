// Package probe instruments a single Fibonacci calculation: it measures the
// wall-clock time and the heap allocations of one Compute call, prints a
// report and hands the measurement to registered observers.
package probe

import (
	"io"
	"math"
	"math/big"
	"time"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/memtrack"
)

// Measurement is the outcome of one probed calculation. It is never
// modified after Measure returns it.
type Measurement struct {
	// Label is the display label of the variant.
	Label string
	// N is the computed index.
	N uint64
	// Result is F(N).
	Result *big.Int
	// Elapsed is the wall-clock duration of the Compute call.
	Elapsed time.Duration
	// Seconds is Elapsed in seconds, rounded to 6 decimal places.
	Seconds float64
	// CurrentBytes is the live-heap growth over the call.
	CurrentBytes uint64
	// PeakBytes is the allocation high-water bound over the call.
	PeakBytes uint64
	// CacheBytes is the shallow cache footprint; meaningful only if HasCache.
	CacheBytes int
	// HasCache is true for calculators that report a cache footprint.
	HasCache bool
}

// CurrentMB returns CurrentBytes in decimal megabytes.
func (m Measurement) CurrentMB() float64 { return memtrack.BytesToMB(m.CurrentBytes) }

// PeakMB returns PeakBytes in decimal megabytes.
func (m Measurement) PeakMB() float64 { return memtrack.BytesToMB(m.PeakBytes) }

// RoundSeconds converts d to seconds rounded to 6 decimal places.
func RoundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1e6) / 1e6
}

// Probe measures calculator calls one at a time. It is not safe for
// concurrent use; the allocation tracker it relies on is process-wide.
type Probe struct {
	out     io.Writer
	subject *Subject
}

// New creates a Probe that prints reports to out and notifies observers
// after each measurement.
func New(out io.Writer, observers ...Observer) *Probe {
	subject := NewSubject()
	for _, o := range observers {
		subject.Register(o)
	}
	return &Probe{out: out, subject: subject}
}

// Subject returns the observer registry of the probe.
func (p *Probe) Subject() *Subject { return p.subject }

// Measure computes calc(n) inside an allocation tracking session, prints the
// report and returns the measurement.
//
// The tracking session is released before Measure returns, whatever the
// outcome. Observers run after the release so they do not count towards
// the measurement.
//
// Parameters:
//   - calc: The calculator to probe.
//   - n: The Fibonacci index.
//   - label: The display label used in the report.
//
// Returns:
//   - Measurement: The collected figures.
//   - error: A *apperrors.ProbeError wrapping the calculator error, or a
//     tracker error if another session is active.
func (p *Probe) Measure(calc fibonacci.Calculator, n uint64, label string) (Measurement, error) {
	m, err := measure(calc, n, label)
	if err != nil {
		p.subject.NotifyFailure(label, n, err)
		return Measurement{}, err
	}
	WriteReport(p.out, m)
	p.subject.NotifyMeasurement(m)
	return m, nil
}

func measure(calc fibonacci.Calculator, n uint64, label string) (Measurement, error) {
	var (
		result  *big.Int
		calcErr error
		elapsed time.Duration
	)
	usage, err := memtrack.Track(func() error {
		start := time.Now()
		result, calcErr = calc.Compute(n)
		elapsed = time.Since(start)
		return nil
	})
	if err != nil {
		return Measurement{}, apperrors.WrapError(err, "probing %s for n=%d", label, n)
	}
	if calcErr != nil {
		return Measurement{}, apperrors.NewProbeError(label, n, calcErr)
	}

	m := Measurement{
		Label:        label,
		N:            n,
		Result:       result,
		Elapsed:      elapsed,
		Seconds:      RoundSeconds(elapsed),
		CurrentBytes: usage.CurrentBytes,
		PeakBytes:    usage.PeakBytes,
	}
	if cr, ok := calc.(fibonacci.CacheReporter); ok {
		m.CacheBytes = cr.CacheFootprint()
		m.HasCache = true
	}
	return m, nil
}
