// Package memtrack tracks heap allocations over a bounded interval.
//
// Go exposes allocation statistics only process-wide (runtime.MemStats), so
// at most one Session may be active at a time. Start acquires the tracker and
// Stop releases it; callers pair them with defer so the tracker is released
// on every exit path, panics included. Track wraps that pattern.
package memtrack

import (
	"errors"
	"runtime"
	"sync/atomic"
)

// BytesPerMB is the decimal megabyte used in every report.
const BytesPerMB = 1_000_000

var (
	// ErrAlreadyTracking is returned by Start while another Session is active.
	ErrAlreadyTracking = errors.New("memtrack: allocation tracking already started")
	// ErrNotTracking is returned by Stop on a Session that was already stopped.
	ErrNotTracking = errors.New("memtrack: allocation tracking not started")
)

var active atomic.Bool

// Usage is the allocation delta observed since a Session started.
type Usage struct {
	// CurrentBytes is the growth of the live heap, clamped at zero when a
	// collection freed more than the interval allocated.
	CurrentBytes uint64
	// PeakBytes is the number of bytes allocated during the interval. It
	// bounds from above the largest simultaneous allocation, and is never
	// below CurrentBytes.
	PeakBytes uint64
}

// CurrentMB returns CurrentBytes in decimal megabytes.
func (u Usage) CurrentMB() float64 { return BytesToMB(u.CurrentBytes) }

// PeakMB returns PeakBytes in decimal megabytes.
func (u Usage) PeakMB() float64 { return BytesToMB(u.PeakBytes) }

// BytesToMB converts a byte count to decimal megabytes.
func BytesToMB(b uint64) float64 {
	return float64(b) / BytesPerMB
}

// Session is an active tracking interval.
type Session struct {
	start   runtime.MemStats
	stopped bool
}

// Start acquires the process-wide tracker. It runs a garbage collection
// first so the baseline does not include garbage from earlier work.
//
// Returns:
//   - *Session: The active session; Stop must be called on it.
//   - error: ErrAlreadyTracking if another session is active.
func Start() (*Session, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrAlreadyTracking
	}
	s := &Session{}
	runtime.GC()
	runtime.ReadMemStats(&s.start)
	return s, nil
}

// Usage reads the allocation delta since Start. It may be called any number
// of times before Stop.
func (s *Session) Usage() Usage {
	var now runtime.MemStats
	runtime.ReadMemStats(&now)

	var u Usage
	if now.HeapAlloc > s.start.HeapAlloc {
		u.CurrentBytes = now.HeapAlloc - s.start.HeapAlloc
	}
	u.PeakBytes = now.TotalAlloc - s.start.TotalAlloc
	if u.PeakBytes < u.CurrentBytes {
		u.PeakBytes = u.CurrentBytes
	}
	return u
}

// Stop releases the tracker. Calling Stop twice returns ErrNotTracking.
func (s *Session) Stop() error {
	if s.stopped {
		return ErrNotTracking
	}
	s.stopped = true
	active.Store(false)
	return nil
}

// Active reports whether a session currently holds the tracker.
func Active() bool { return active.Load() }

// Track runs fn inside a tracking session and returns the allocation delta
// it produced. The session is released even if fn fails or panics.
func Track(fn func() error) (u Usage, err error) {
	s, err := Start()
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if stopErr := s.Stop(); err == nil {
			err = stopErr
		}
	}()

	err = fn()
	u = s.Usage()
	return u, err
}
