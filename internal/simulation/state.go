package simulation

import (
	"github.com/pitchlab/salestrainer/internal/textkit"
)

// Phase is the current stage of the simulated call.
type Phase string

const (
	PhaseOpening           Phase = "opening"
	PhaseDiscovery         Phase = "discovery"
	PhaseValueProp         Phase = "value-prop"
	PhaseObjectionHandling Phase = "objection-handling"
	PhaseClosing           Phase = "closing"
)

// State is the conversation state. Values, not pointers, flow through Advance
// so the one-way hangup trapdoor and the append-only invariants stay easy to
// verify: a transition returns a new State and never mutates its input's
// slices in place.
type State struct {
	Phase Phase `json:"phase"`

	// Relationship levels in [0,1]. They only ever rise; the prospect never
	// spontaneously loses trust, it must be earned turn by turn.
	Rapport    float64 `json:"rapport"`
	Trust      float64 `json:"trust"`
	Engagement float64 `json:"engagement"`

	// Append-only, deduplicated, first-seen order.
	ObjectionsSurfaced   []string `json:"objections_surfaced,omitempty"`
	PainPointsDiscovered []string `json:"pain_points_discovered,omitempty"`
	ValuePropsPresented  []string `json:"value_props_presented,omitempty"`
	QuestionsAsked       []string `json:"questions_asked,omitempty"`
	CommitmentsGiven     []string `json:"commitments_given,omitempty"`

	// PendingObjection is the most recent prospect objection the rep has not
	// yet addressed. Cleared when a handling attempt follows it.
	PendingObjection string `json:"pending_objection,omitempty"`

	// Set once, never cleared.
	NextStepsDiscussed       bool `json:"next_steps_discussed"`
	BudgetDiscussed          bool `json:"budget_discussed"`
	TimelineDiscussed        bool `json:"timeline_discussed"`
	DecisionMakersIdentified bool `json:"decision_makers_identified"`

	// Hangup is terminal: once ShouldHangup is set no further state evolution
	// happens for the session.
	ShouldHangup   bool     `json:"should_hangup"`
	HangupReason   string   `json:"hangup_reason,omitempty"`
	HangupTriggers []string `json:"hangup_triggers,omitempty"`

	RepTurns int `json:"rep_turns"`
}

// NewState returns the opening state for a fresh session.
func NewState() State {
	return State{Phase: PhaseOpening}
}

// SentimentSnapshot is one entry in the prospect's emotional journey.
type SentimentSnapshot struct {
	TurnID  string                 `json:"turn_id"`
	Speaker Speaker                `json:"speaker"`
	Label   textkit.SentimentLabel `json:"label"`
	Phase   Phase                  `json:"phase"`
}

// Tactics counts what the rep has tried so far.
type Tactics struct {
	QuestionsAsked   int `json:"questions_asked"`
	ValuePropsUsed   int `json:"value_props_used"`
	HandlingAttempts int `json:"handling_attempts"`
	ClosingAttempts  int `json:"closing_attempts"`
}

// Revealed accumulates what the prospect has given away. Each field is
// write-once-then-overwrite: later mentions replace earlier ones, nothing is
// ever retracted.
type Revealed struct {
	Budget          string `json:"budget,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	CompanySize     string `json:"company_size,omitempty"`
	DecisionProcess string `json:"decision_process,omitempty"`
}

// Merge overlays non-empty extracted fields onto the accumulator.
func (r Revealed) Merge(info textkit.RevealedInfo) Revealed {
	if info.Budget != "" {
		r.Budget = info.Budget
	}
	if info.Timeline != "" {
		r.Timeline = info.Timeline
	}
	if info.CompanySize != "" {
		r.CompanySize = info.CompanySize
	}
	if info.DecisionProcess != "" {
		r.DecisionProcess = info.DecisionProcess
	}
	return r
}

// Memory is the prospect's session-scoped memory. Owned by exactly one
// session, never shared.
type Memory struct {
	History          []Turn              `json:"history"`
	Revealed         Revealed            `json:"revealed"`
	Tactics          Tactics             `json:"tactics"`
	EmotionalJourney []SentimentSnapshot `json:"emotional_journey,omitempty"`
}

// NewMemory returns empty memory for a fresh session.
func NewMemory() Memory {
	return Memory{}
}

// RecentHistory returns the last n turns, newest last.
func (m Memory) RecentHistory(n int) []Turn {
	if n <= 0 || len(m.History) <= n {
		return m.History
	}
	return m.History[len(m.History)-n:]
}

// appendUnique grows an append-only set, preserving first-seen order.
func appendUnique(set []string, value string) []string {
	for _, existing := range set {
		if existing == value {
			return set
		}
	}
	out := make([]string, len(set), len(set)+1)
	copy(out, set)
	return append(out, value)
}

// clamp01 caps a level at 1. Levels never go below their previous value, so
// no lower bound is needed.
func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
