package probe

import (
	"errors"
	"sync"

	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
)

// Observer receives the outcome of every probe.
type Observer interface {
	// OnMeasurement is called after a successful measurement.
	OnMeasurement(m Measurement)
	// OnFailure is called when the calculator (or the tracker) failed.
	OnFailure(label string, n uint64, err error)
}

// Subject manages observer registration and notification.
// Observers are notified synchronously, in registration order.
type Subject struct {
	observers []Observer
	mu        sync.RWMutex
}

// NewSubject creates an empty subject.
func NewSubject() *Subject {
	return &Subject{observers: make([]Observer, 0)}
}

// Register adds an observer. A nil observer is ignored.
func (s *Subject) Register(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// NotifyMeasurement forwards m to every observer.
func (s *Subject) NotifyMeasurement(m Measurement) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnMeasurement(m)
	}
}

// NotifyFailure forwards a failure to every observer.
func (s *Subject) NotifyFailure(label string, n uint64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnFailure(label, n, err)
	}
}

// ObserverCount returns the number of registered observers.
func (s *Subject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// LoggingObserver writes one structured log event per probe.
// Successful measurements are logged at debug level, recursion limits at
// warn level and any other failure at error level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates an observer logging through logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnMeasurement implements Observer.
func (o *LoggingObserver) OnMeasurement(m Measurement) {
	fields := []logging.Field{
		logging.String("variant", m.Label),
		logging.Uint64("n", m.N),
		logging.Float64("seconds", m.Seconds),
		logging.Uint64("current_bytes", m.CurrentBytes),
		logging.Uint64("peak_bytes", m.PeakBytes),
	}
	if m.HasCache {
		fields = append(fields, logging.Int("cache_bytes", m.CacheBytes))
	}
	o.logger.Debug("probe completed", fields...)
}

// OnFailure implements Observer.
func (o *LoggingObserver) OnFailure(label string, n uint64, err error) {
	if errors.Is(err, fibonacci.ErrRecursionDepthExceeded) {
		o.logger.Warn("recursion limit reached", logging.String("variant", label), logging.Uint64("n", n), logging.Err(err))
		return
	}
	o.logger.Error("probe failed", err, logging.String("variant", label), logging.Uint64("n", n))
}
