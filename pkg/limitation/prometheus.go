package limitation

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder is a MetricsRecorder backed by Prometheus. Metric
// names like "limitation.count" become "limitation_count"; the
// outcome and reason tags map onto labels.
type PrometheusRecorder struct {
	counters *prometheus.CounterVec
	timings  *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the limiter's metric families with
// reg (the default registerer when nil) and returns the recorder.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	counters := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "limitation",
		Name:      "events_total",
		Help:      "Limiter events by name, outcome and denial reason.",
	}, []string{"name", "outcome", "reason"})

	timings := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "limitation",
		Name:      "observation_seconds",
		Help:      "Limiter timings in seconds, notably the store round trip.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"name"})

	if err := reg.Register(counters); err != nil {
		return nil, err
	}
	if err := reg.Register(timings); err != nil {
		return nil, err
	}

	return &PrometheusRecorder{counters: counters, timings: timings}, nil
}

// Add implements MetricsRecorder.
func (p *PrometheusRecorder) Add(name string, value float64, tags map[string]string) {
	p.counters.WithLabelValues(metricName(name), tags["outcome"], tags["reason"]).Add(value)
}

// Observe implements MetricsRecorder.
func (p *PrometheusRecorder) Observe(name string, value float64, tags map[string]string) {
	p.timings.WithLabelValues(metricName(name)).Observe(value)
}

func metricName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
