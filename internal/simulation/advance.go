package simulation

import (
	"time"

	"github.com/pitchlab/salestrainer/internal/scenario"
	"github.com/pitchlab/salestrainer/internal/textkit"
)

// Level increments. Gated by classification; levels never decrease.
const (
	rapportDiscoveryDelta  = 0.10
	rapportGeneralDelta    = 0.05
	trustHandlingDelta     = 0.10
	trustROIDelta          = 0.05
	engagementMatchedDelta = 0.15
	engagementPitchDelta   = 0.05
)

// Directive tells the text-generation collaborator how the prospect should
// behave on its next reply.
type Directive struct {
	Text          string
	Terminal      bool
	HangupReason  string
	ResponseDelay time.Duration
}

// Advance runs one rep turn through the state machine: append to history,
// classify, evaluate hangup (hardest tier only), update levels and phase, and
// compile the behavioral directive. Pure with respect to its inputs; once the
// hangup trapdoor has fired every later call is a no-op that re-emits the
// terminal directive.
func Advance(sc *scenario.Context, state State, mem Memory, turn Turn) (State, Memory, Directive) {
	if state.ShouldHangup {
		return state, mem, terminalDirective(sc, state)
	}

	turn.Speaker = SpeakerRep
	turn.Phase = state.Phase
	mem.History = append(append([]Turn(nil), mem.History...), turn)

	cls := classify(turn.Message)
	mem.EmotionalJourney = append(append([]SentimentSnapshot(nil), mem.EmotionalJourney...), SentimentSnapshot{
		TurnID:  turn.ID,
		Speaker: SpeakerRep,
		Label:   cls.Sentiment,
		Phase:   state.Phase,
	})

	if sc.Difficulty.HangupEnabled {
		if fired := evaluateHangup(sc, state, cls, textkit.WordCount(turn.Message)); len(fired) > 0 {
			state.ShouldHangup = true
			state.HangupReason = fired[0]
			state.HangupTriggers = fired
			state.RepTurns++
			return state, mem, terminalDirective(sc, state)
		}
	}

	state = applyClassification(state, &mem, cls, turn.Message)
	state.Phase = nextPhase(state, cls)
	state.RepTurns++

	return state, mem, Directive{
		Text:          CompileDirective(sc, state),
		ResponseDelay: sc.Difficulty.ResponseDelay,
	}
}

// applyClassification updates levels, sets, counters, and flags from one rep
// utterance. Memory counters mutate the local copy the caller passed by value.
func applyClassification(state State, mem *Memory, cls classification, message string) State {
	if cls.HasQuestion {
		mem.Tactics.QuestionsAsked++
		state.QuestionsAsked = appendUnique(state.QuestionsAsked, message)
		if cls.isDiscoveryQuestion() {
			state.Rapport = clamp01(state.Rapport + rapportDiscoveryDelta)
		} else {
			state.Rapport = clamp01(state.Rapport + rapportGeneralDelta)
		}
	}

	if cls.ObjectionHandling {
		mem.Tactics.HandlingAttempts++
		state.Trust = clamp01(state.Trust + trustHandlingDelta)
	}
	if len(cls.HandlingSignals) > 0 {
		// Any handling attempt, even a weak one, clears the pending objection.
		state.PendingObjection = ""
	}

	if cls.ROILanguage {
		state.Trust = clamp01(state.Trust + trustROIDelta)
	}

	if cls.ValueProp {
		mem.Tactics.ValuePropsUsed++
		state.ValuePropsPresented = appendUnique(state.ValuePropsPresented, message)
		if len(state.PainPointsDiscovered) > 0 {
			state.Engagement = clamp01(state.Engagement + engagementMatchedDelta)
		} else {
			state.Engagement = clamp01(state.Engagement + engagementPitchDelta)
		}
	}

	if cls.ClosingAttempt {
		mem.Tactics.ClosingAttempts++
		state.NextStepsDiscussed = true
	}

	if cls.hasTopic(textkit.TopicBudget) {
		state.BudgetDiscussed = true
	}
	if cls.hasTopic(textkit.TopicTimeline) {
		state.TimelineDiscussed = true
	}
	if cls.hasTopic(textkit.TopicDecisionProcess) {
		state.DecisionMakersIdentified = true
	}

	return state
}

// nextPhase applies the transition table. Priority: closing beats everything,
// then value-prop, then discovery. Objection-handling entry happens on the
// prospect side (ObserveProspectReply); from there a discovery question steers
// the call back to discovery.
func nextPhase(state State, cls classification) Phase {
	switch {
	case cls.ClosingAttempt:
		return PhaseClosing
	case cls.ValueProp && (state.Phase == PhaseDiscovery || state.Phase == PhaseObjectionHandling):
		return PhaseValueProp
	case state.Phase == PhaseOpening && cls.HasQuestion:
		return PhaseDiscovery
	case state.Phase == PhaseObjectionHandling && cls.isDiscoveryQuestion():
		return PhaseDiscovery
	default:
		return state.Phase
	}
}

// ObserveProspectReply folds the generated prospect turn back into the
// session: history, emotional journey, surfaced objections, pain points,
// commitments, revealed information, and the objection-handling phase entry.
// No-op after hangup.
func ObserveProspectReply(sc *scenario.Context, state State, mem Memory, turn Turn) (State, Memory) {
	if state.ShouldHangup {
		return state, mem
	}

	turn.Speaker = SpeakerProspect
	turn.Phase = state.Phase
	mem.History = append(append([]Turn(nil), mem.History...), turn)

	label, _, _ := textkit.Sentiment(turn.Message)
	mem.EmotionalJourney = append(append([]SentimentSnapshot(nil), mem.EmotionalJourney...), SentimentSnapshot{
		TurnID:  turn.ID,
		Speaker: SpeakerProspect,
		Label:   label,
		Phase:   state.Phase,
	})

	if category := textkit.DetectObjection(turn.Message); category != textkit.ObjectionNone {
		state.ObjectionsSurfaced = appendUnique(state.ObjectionsSurfaced, string(category))
		state.PendingObjection = string(category)
		state.Phase = PhaseObjectionHandling
	}

	if textkit.HasPainExplorationLanguage(turn.Message) || textkit.HasTopic(turn.Message, textkit.TopicPainPoints) {
		state.PainPointsDiscovered = appendUnique(state.PainPointsDiscovered, turn.Message)
	}

	if textkit.IsCommitment(turn.Message) {
		state.CommitmentsGiven = appendUnique(state.CommitmentsGiven, turn.Message)
		state.NextStepsDiscussed = true
	}

	mem.Revealed = mem.Revealed.Merge(textkit.ExtractRevealedInfo(turn.Message))
	if mem.Revealed.Budget != "" {
		state.BudgetDiscussed = true
	}
	if mem.Revealed.Timeline != "" {
		state.TimelineDiscussed = true
	}
	if mem.Revealed.DecisionProcess != "" {
		state.DecisionMakersIdentified = true
	}

	return state, mem
}

func terminalDirective(sc *scenario.Context, state State) Directive {
	return Directive{
		Text:         CompileHangupDirective(sc, state),
		Terminal:     true,
		HangupReason: state.HangupReason,
	}
}
