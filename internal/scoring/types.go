// Package scoring turns a finished call transcript into a graded, coachable
// report. The deterministic pass is a pure function of the transcript and the
// static call-type tables; the generative pass is best-effort narrative on top.
package scoring

import (
	"time"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/textkit"
)

// Speaker values after boundary normalization.
const (
	SpeakerRep      = "rep"
	SpeakerProspect = "prospect"
	SpeakerUnknown  = "unknown"
)

// Turn is the canonical transcript record. Everything upstream (recording
// pipeline, session engine, raw JSON) is normalized into this shape once, at
// the boundary; nothing past normalization probes alternate field names.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Metric names, fixed vocabulary shared with the weight tables.
const (
	MetricTalkRatio         = "talk_ratio"
	MetricDiscovery         = "discovery"
	MetricObjectionHandling = "objection_handling"
	MetricConfidence        = "confidence"
	MetricCallToAction      = "call_to_action"
)

// AnalysisMode records whether the generative pass contributed.
type AnalysisMode string

const (
	ModeFull    AnalysisMode = "full"
	ModePartial AnalysisMode = "partial"
)

// MetricScore is one row of the per-metric breakdown.
type MetricScore struct {
	Name     string   `json:"name"`
	Score    float64  `json:"score"`
	Weight   float64  `json:"weight"`
	Detail   string   `json:"detail,omitempty"`
	Feedback []string `json:"feedback,omitempty"`
}

// TalkRatioAnalysis breaks down the rep's share of the conversation.
type TalkRatioAnalysis struct {
	RepTurns      int                   `json:"rep_turns"`
	ProspectTurns int                   `json:"prospect_turns"`
	TotalTurns    int                   `json:"total_turns"`
	RepPercent    float64               `json:"rep_percent"`
	IdealBand     persona.TalkRatioBand `json:"ideal_band"`
	Deviation     float64               `json:"deviation"`
	Score         float64               `json:"score"`
}

// DiscoveryDepth labels how far the rep's questioning went.
type DiscoveryDepth string

const (
	DepthSurface  DiscoveryDepth = "surface"
	DepthModerate DiscoveryDepth = "moderate"
	DepthDeep     DiscoveryDepth = "deep"
)

// DiscoveryAnalysis summarizes the rep's questioning technique.
type DiscoveryAnalysis struct {
	TotalQuestions int                          `json:"total_questions"`
	OpenQuestions  int                          `json:"open_questions"`
	SPINCounts     map[textkit.QuestionType]int `json:"spin_counts"`
	Depth          DiscoveryDepth               `json:"depth"`
	Score          float64                      `json:"score"`
}

// ObjectionEffectiveness grades one objection response.
type ObjectionEffectiveness string

const (
	EffectivenessUnaddressed ObjectionEffectiveness = "unaddressed"
	EffectivenessPoor        ObjectionEffectiveness = "poor"
	EffectivenessFair        ObjectionEffectiveness = "fair"
	EffectivenessGood        ObjectionEffectiveness = "good"
	EffectivenessExcellent   ObjectionEffectiveness = "excellent"
)

// HandledObjection pairs a surfaced objection with the rep's next turn.
type HandledObjection struct {
	Category      textkit.ObjectionCategory `json:"category"`
	Objection     string                    `json:"objection"`
	Response      string                    `json:"response,omitempty"`
	Handled       bool                      `json:"handled"`
	Signals       []textkit.HandlingSignal  `json:"signals,omitempty"`
	Effectiveness ObjectionEffectiveness    `json:"effectiveness"`
	Score         float64                   `json:"score"`
}

// ObjectionAnalysis summarizes objection handling across the call.
type ObjectionAnalysis struct {
	Objections []HandledObjection `json:"objections"`
	Score      float64            `json:"score"`
}

// ConfidenceAnalysis measures delivery: fillers and hedging per spoken word.
type ConfidenceAnalysis struct {
	WordCount     int     `json:"word_count"`
	FillerCount   int     `json:"filler_count"`
	HedgeCount    int     `json:"hedge_count"`
	FillerDensity float64 `json:"filler_density"` // per 100 words
	HedgeDensity  float64 `json:"hedge_density"`  // per 100 words
	Score         float64 `json:"score"`
}

// CTAAnalysis grades the call-to-action: presence, specificity, agreement.
type CTAAnalysis struct {
	Attempted bool    `json:"attempted"`
	Specific  bool    `json:"specific"`
	Agreed    bool    `json:"agreed"`
	Attempt   string  `json:"attempt,omitempty"`
	Score     float64 `json:"score"`
}

// SentimentAnalysis is the prospect's emotional trajectory.
type SentimentAnalysis struct {
	Opening textkit.SentimentLabel         `json:"opening"`
	Closing textkit.SentimentLabel         `json:"closing"`
	Counts  map[textkit.SentimentLabel]int `json:"counts"`
}

// ImprovementPriority tags how urgent a weak metric is.
type ImprovementPriority string

const (
	PriorityHigh   ImprovementPriority = "high"
	PriorityMedium ImprovementPriority = "medium"
	PriorityLow    ImprovementPriority = "low"
)

// Improvement is one templated coaching item for a sub-70 metric.
type Improvement struct {
	Metric     string              `json:"metric"`
	Score      float64             `json:"score"`
	Priority   ImprovementPriority `json:"priority"`
	Issue      string              `json:"issue"`
	Suggestion string              `json:"suggestion"`
	Example    string              `json:"example"`
}

// CoachingFeedback is the narrative block of a score report.
type CoachingFeedback struct {
	Summary             string        `json:"summary"`
	Improvements        []Improvement `json:"improvements,omitempty"`
	MissedOpportunities []string      `json:"missed_opportunities,omitempty"`
	NextCallPrep        []string      `json:"next_call_prep,omitempty"`
	PracticeRecs        []string      `json:"practice_recommendations,omitempty"`
}

// CallScore is the terminal scoring artifact. Computed once per transcript,
// never mutated; re-running produces a fresh value.
type CallScore struct {
	CallType   persona.CallType   `json:"call_type"`
	Overall    float64            `json:"overall"`
	Metrics    []MetricScore      `json:"metrics"`
	TalkRatio  TalkRatioAnalysis  `json:"talk_ratio"`
	Discovery  DiscoveryAnalysis  `json:"discovery"`
	Objection  ObjectionAnalysis  `json:"objection_handling"`
	Confidence ConfidenceAnalysis `json:"confidence"`
	CTA        CTAAnalysis        `json:"call_to_action"`
	Sentiment  SentimentAnalysis  `json:"sentiment"`
	Strengths  []string           `json:"strengths,omitempty"`
	Coaching   CoachingFeedback   `json:"coaching"`
	Mode       AnalysisMode       `json:"mode"`
	ScoredAt   time.Time          `json:"scored_at"`
}

// MetricScoreByName returns the breakdown row for one metric.
func (c *CallScore) MetricScoreByName(name string) (MetricScore, bool) {
	for _, m := range c.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricScore{}, false
}
