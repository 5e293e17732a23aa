package limitation

// MetricsRecorder receives counters and timings from the limiter and
// middleware. Implementations must be safe for concurrent use.
//
// Emitted series:
//
//	limitation.count    counter: store counting calls
//	limitation.latency  timing:  store round trip in seconds
//	limitation.decision counter: tagged with outcome (admitted or
//	                    denied) and reason ("" for normal admissions,
//	                    otherwise quota, unresolved_key or
//	                    store_unavailable)
type MetricsRecorder interface {
	Add(name string, value float64, tags map[string]string)
	Observe(name string, value float64, tags map[string]string)
}

// NoOpMetricsRecorder is a placeholder that does nothing.
// It ensures we never have to check 'if recorder != nil' in the hot path.
type NoOpMetricsRecorder struct{}

func (NoOpMetricsRecorder) Add(name string, value float64, tags map[string]string)     {}
func (NoOpMetricsRecorder) Observe(name string, value float64, tags map[string]string) {}
