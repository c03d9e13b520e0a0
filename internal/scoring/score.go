package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pitchlab/salestrainer/internal/observability/metrics"
	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/textkit"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

const defaultAnalystTimeout = 20 * time.Second

// Narrative is what the generative pass contributes: free-text coaching on
// top of the deterministic numbers. The numbers themselves always come from
// the deterministic pass.
type Narrative struct {
	Summary             string   `json:"summary"`
	MissedOpportunities []string `json:"missed_opportunities"`
	NextCallPrep        []string `json:"next_call_prep"`
	PracticeRecs        []string `json:"practice_recommendations"`
}

// Analyst is the structured-analysis collaborator. A nil Analyst means the
// engine always produces deterministic-only (partial) results.
type Analyst interface {
	Analyze(ctx context.Context, turns []Turn, callType persona.CallType) (*Narrative, error)
}

// Engine scores finished transcripts. Stateless per call; safe for concurrent
// use across transcripts.
type Engine struct {
	registry *persona.Registry
	analyst  Analyst
	logger   *logging.Logger
	metrics  *metrics.ScoringMetrics
	timeout  time.Duration
	now      func() time.Time
}

// EngineOption configures the scoring engine.
type EngineOption func(*Engine)

// WithAnalyst attaches the generative coaching collaborator.
func WithAnalyst(a Analyst) EngineOption {
	return func(e *Engine) { e.analyst = a }
}

// WithAnalystTimeout bounds the generative pass.
func WithAnalystTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.ScoringMetrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithClock substitutes the timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds a scoring engine over the static call-type tables.
func NewEngine(registry *persona.Registry, logger *logging.Logger, opts ...EngineOption) *Engine {
	if registry == nil {
		panic("scoring: registry cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		registry: registry,
		logger:   logger,
		timeout:  defaultAnalystTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score grades a normalized transcript for one call type. The deterministic
// pass always succeeds; the generative pass is best-effort and its absence
// downgrades the result to partial analysis instead of failing the call.
func (e *Engine) Score(ctx context.Context, turns []Turn, callType persona.CallType) (*CallScore, error) {
	cfg, err := e.registry.CallTypeConfig(callType)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	start := e.now()
	score := e.deterministicPass(turns, cfg)

	mode := ModePartial
	var narrative *Narrative
	if e.analyst != nil {
		narrative = e.runAnalyst(ctx, turns, callType)
		if narrative != nil {
			mode = ModeFull
		}
	}
	score.Mode = mode
	score.Coaching = buildCoaching(score, narrative)
	score.ScoredAt = e.now()

	e.metrics.ObserveRun(string(mode), string(callType), e.now().Sub(start).Seconds())
	e.logger.Info("call scored",
		"call_type", callType,
		"overall", score.Overall,
		"mode", mode,
		"turns", len(turns),
	)
	return score, nil
}

func (e *Engine) deterministicPass(turns []Turn, cfg persona.CallTypeConfig) *CallScore {
	talk := analyzeTalkRatio(turns, cfg.IdealTalkRatio)
	discovery := analyzeDiscovery(turns)
	objection := analyzeObjections(turns)
	confidence := analyzeConfidence(turns)
	cta := analyzeCTA(turns)

	score := &CallScore{
		CallType:   cfg.Type,
		TalkRatio:  talk,
		Discovery:  discovery,
		Objection:  objection,
		Confidence: confidence,
		CTA:        cta,
		Sentiment:  analyzeSentiment(turns),
		Metrics: []MetricScore{
			{Name: MetricTalkRatio, Score: talk.Score, Weight: cfg.Weights.TalkRatio, Detail: talkRatioDetail(talk)},
			{Name: MetricDiscovery, Score: discovery.Score, Weight: cfg.Weights.Discovery, Detail: discoveryDetail(discovery)},
			{Name: MetricObjectionHandling, Score: objection.Score, Weight: cfg.Weights.ObjectionHandling, Detail: objectionDetail(objection)},
			{Name: MetricConfidence, Score: confidence.Score, Weight: cfg.Weights.Confidence, Detail: confidenceDetail(confidence)},
			{Name: MetricCallToAction, Score: cta.Score, Weight: cfg.Weights.CallToAction, Detail: ctaDetail(cta)},
		},
	}

	score.Overall = overallScore(score.Metrics)
	score.Strengths = strengths(score.Metrics)
	return score
}

// overallScore is the dot product of per-metric scores and call-type weights.
func overallScore(ms []MetricScore) float64 {
	var sum float64
	for _, m := range ms {
		sum += m.Score * m.Weight
	}
	return sum
}

// strengths are the metrics scoring at least 80, in breakdown order.
func strengths(ms []MetricScore) []string {
	var out []string
	for _, m := range ms {
		if m.Score >= 80 {
			out = append(out, m.Name)
		}
	}
	return out
}

// weakMetrics are the sub-70 metrics, ascending by score, capped at three.
func weakMetrics(ms []MetricScore) []MetricScore {
	var weak []MetricScore
	for _, m := range ms {
		if m.Score < 70 {
			weak = append(weak, m)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	if len(weak) > 3 {
		weak = weak[:3]
	}
	return weak
}

func improvementPriority(score float64) ImprovementPriority {
	switch {
	case score < 50:
		return PriorityHigh
	case score < 60:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func analyzeSentiment(turns []Turn) SentimentAnalysis {
	a := SentimentAnalysis{Counts: make(map[textkit.SentimentLabel]int)}
	first := true
	for _, t := range turns {
		if t.Speaker != SpeakerProspect {
			continue
		}
		label, _, _ := textkit.Sentiment(t.Message)
		a.Counts[label]++
		if first {
			a.Opening = label
			first = false
		}
		a.Closing = label
	}
	if first {
		a.Opening = textkit.SentimentNeutral
		a.Closing = textkit.SentimentNeutral
	}
	return a
}

func (e *Engine) runAnalyst(ctx context.Context, turns []Turn, callType persona.CallType) *Narrative {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	narrative, err := e.analyst.Analyze(ctx, turns, callType)
	if err != nil {
		e.logger.Warn("generative scoring pass failed, falling back to deterministic result",
			"call_type", callType, "error", err)
		return nil
	}
	return narrative
}
