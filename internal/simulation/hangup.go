package simulation

import (
	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scenario"
)

// Hangup trigger names. These appear in State.HangupTriggers and in the
// terminal directive, so they are part of the engine's public vocabulary.
const (
	TriggerGenericPitch         = "generic_pitch"
	TriggerPrematureDiscovery   = "premature_discovery"
	TriggerIgnoredObjection     = "ignored_objection"
	TriggerUnprofessionalOpener = "unprofessional_opening"
	TriggerBuzzwordAllergy      = "buzzword_allergy"
	TriggerSmallTalkIntolerance = "small_talk_intolerance"
	TriggerNoROIFocus           = "no_roi_focus"
	TriggerRamblingIntro        = "rambling_intro"
)

// rapport below this is "not yet built" for the premature-probe trigger.
const prematureProbeRapport = 0.15

// evaluateHangup returns the triggers fired by this rep turn, in a fixed
// order: generic triggers first, then archetype-specific ones. The caller only
// invokes this at the hardest difficulty tier.
func evaluateHangup(sc *scenario.Context, state State, cls classification, wordCount int) []string {
	var fired []string

	// Generic triggers, fixed order.
	if cls.Buzzwords && cls.ValueProp {
		fired = append(fired, TriggerGenericPitch)
	}
	if cls.isDeepProbe() && state.RepTurns == 0 && state.Rapport < prematureProbeRapport {
		fired = append(fired, TriggerPrematureDiscovery)
	}
	if state.PendingObjection != "" && len(cls.HandlingSignals) == 0 {
		fired = append(fired, TriggerIgnoredObjection)
	}
	if cls.Unprofessional && state.RepTurns == 0 {
		fired = append(fired, TriggerUnprofessionalOpener)
	}

	// Archetype triggers key off the explicit enum, never the persona name.
	switch sc.Persona.EffectiveArchetype() {
	case persona.ArchetypeHostileCTO:
		if cls.Buzzwords {
			fired = append(fired, TriggerBuzzwordAllergy)
		}
		if cls.SmallTalk {
			fired = append(fired, TriggerSmallTalkIntolerance)
		}
	case persona.ArchetypeSkepticalCFO:
		if state.RepTurns == 0 && !cls.ROILanguage {
			fired = append(fired, TriggerNoROIFocus)
		}
	case persona.ArchetypeBusyExecutive:
		if state.RepTurns == 0 && wordCount > 80 {
			fired = append(fired, TriggerRamblingIntro)
		}
	}

	return dedupe(fired)
}

func dedupe(values []string) []string {
	var out []string
	for _, v := range values {
		out = appendUnique(out, v)
	}
	return out
}
