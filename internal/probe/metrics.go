package probe

import (
	"errors"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// Failure reasons used as the "reason" label of fibbench_probe_failures_total.
const (
	ReasonRecursionDepth = "recursion_depth"
	ReasonError          = "error"
)

// MetricsObserver exports probe results as Prometheus metrics:
//   - fibbench_probe_duration_seconds{variant} (histogram)
//   - fibbench_probe_peak_bytes{variant,n} (gauge)
//   - fibbench_probe_failures_total{variant,reason} (counter)
type MetricsObserver struct {
	duration *prometheus.HistogramVec
	peak     *prometheus.GaugeVec
	failures *prometheus.CounterVec
}

// NewMetricsObserver registers the probe metrics on reg.
// Each registry accepts a single MetricsObserver.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	factory := promauto.With(reg)
	return &MetricsObserver{
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fibbench_probe_duration_seconds",
				Help:    "Wall-clock duration of probed Fibonacci calculations in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 9),
			},
			[]string{"variant"},
		),
		peak: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fibbench_probe_peak_bytes",
				Help: "Bytes allocated during the probed calculation",
			},
			[]string{"variant", "n"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fibbench_probe_failures_total",
				Help: "Number of probes that did not complete",
			},
			[]string{"variant", "reason"},
		),
	}
}

// OnMeasurement implements Observer.
func (o *MetricsObserver) OnMeasurement(m Measurement) {
	o.duration.WithLabelValues(m.Label).Observe(m.Elapsed.Seconds())
	o.peak.WithLabelValues(m.Label, strconv.FormatUint(m.N, 10)).Set(float64(m.PeakBytes))
}

// OnFailure implements Observer.
func (o *MetricsObserver) OnFailure(label string, _ uint64, err error) {
	reason := ReasonError
	if errors.Is(err, fibonacci.ErrRecursionDepthExceeded) {
		reason = ReasonRecursionDepth
	}
	o.failures.WithLabelValues(label, reason).Inc()
}

// WriteMetrics writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
