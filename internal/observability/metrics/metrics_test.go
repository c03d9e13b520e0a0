package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEngineMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)

	m.ObserveSessionStart("discovery-outbound", "brutal")
	m.ObserveTurn("ok")
	m.ObserveTurn("ok")
	m.ObserveHangup("no_roi_focus")
	m.ObserveLLMLatency("success", 0.42)

	if got := testutil.ToFloat64(m.turnsTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("turns_total = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.hangupsTotal.WithLabelValues("no_roi_focus")); got != 1 {
		t.Errorf("hangups_total = %f, want 1", got)
	}
}

func TestScoringMetricsNilSafe(t *testing.T) {
	var m *ScoringMetrics
	// Must not panic on a nil receiver; handlers are wired without metrics in tests.
	m.ObserveRun("deterministic", "elevator-pitch", 0.1)
}

func TestScoringMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScoringMetrics(reg)
	m.ObserveRun("full", "discovery-outbound", 1.5)
	if got := testutil.ToFloat64(m.runsTotal.WithLabelValues("full", "discovery-outbound")); got != 1 {
		t.Errorf("runs_total = %f, want 1", got)
	}
}
