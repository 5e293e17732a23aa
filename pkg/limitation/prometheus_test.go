package limitation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusRecorder() error: %v", err)
	}

	rec.Add("limitation.decision", 1, map[string]string{"outcome": "denied", "reason": "quota"})
	rec.Add("limitation.decision", 1, map[string]string{"outcome": "denied", "reason": "quota"})
	rec.Observe("limitation.latency", 0.004, nil)

	counter := rec.counters.WithLabelValues("limitation_decision", "denied", "quota")
	if got := testutil.ToFloat64(counter); got != 2 {
		t.Errorf("denied/quota counter = %v, want 2", got)
	}

	if got := testutil.CollectAndCount(rec.timings, "limitation_observation_seconds"); got != 1 {
		t.Errorf("timing series count = %d, want 1", got)
	}
}

func TestPrometheusRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Error("second registration on the same registry should fail")
	}
}
