package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters/histograms for simulation sessions.
type EngineMetrics struct {
	sessionsStarted *prometheus.CounterVec
	turnsTotal      *prometheus.CounterVec
	hangupsTotal    *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salestrainer",
			Subsystem: "simulation",
			Name:      "sessions_started_total",
			Help:      "Total simulation sessions started",
		}, []string{"call_type", "difficulty"}),
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salestrainer",
			Subsystem: "simulation",
			Name:      "turns_total",
			Help:      "Total rep turns processed",
		}, []string{"status"}),
		hangupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salestrainer",
			Subsystem: "simulation",
			Name:      "hangups_total",
			Help:      "Simulated hangups by trigger",
		}, []string{"trigger"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salestrainer",
			Subsystem: "simulation",
			Name:      "llm_latency_seconds",
			Help:      "Latency of prospect reply generation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.turnsTotal, m.hangupsTotal, m.llmLatency)
	return m
}

func (m *EngineMetrics) ObserveSessionStart(callType, difficulty string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(callType, difficulty).Inc()
}

func (m *EngineMetrics) ObserveTurn(status string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(status).Inc()
}

func (m *EngineMetrics) ObserveHangup(trigger string) {
	if m == nil {
		return
	}
	m.hangupsTotal.WithLabelValues(trigger).Inc()
}

func (m *EngineMetrics) ObserveLLMLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.WithLabelValues(outcome).Observe(seconds)
}

// ScoringMetrics tracks scoring runs and their analysis mode.
type ScoringMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

func NewScoringMetrics(reg prometheus.Registerer) *ScoringMetrics {
	m := &ScoringMetrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salestrainer",
			Subsystem: "scoring",
			Name:      "runs_total",
			Help:      "Scoring runs by analysis mode",
		}, []string{"mode", "call_type"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salestrainer",
			Subsystem: "scoring",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a scoring run",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.runsTotal, m.runDuration)
	return m
}

func (m *ScoringMetrics) ObserveRun(mode, callType string, seconds float64) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(mode, callType).Inc()
	m.runDuration.WithLabelValues(mode).Observe(seconds)
}
