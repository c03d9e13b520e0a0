package scoring

import (
	"fmt"

	"github.com/pitchlab/salestrainer/internal/textkit"
)

// analyzeObjections pairs every detected prospect objection with the rep's
// next turn and grades the response by how many handling phrase classes it
// shows. No objections at all is a perfect score: nothing was mishandled.
func analyzeObjections(turns []Turn) ObjectionAnalysis {
	var a ObjectionAnalysis

	for i, t := range turns {
		if t.Speaker != SpeakerProspect {
			continue
		}
		category := textkit.DetectObjection(t.Message)
		if category == textkit.ObjectionNone {
			continue
		}

		handled := HandledObjection{
			Category:  category,
			Objection: t.Message,
		}
		if response, ok := nextRepTurn(turns, i+1); ok {
			handled.Response = response
			handled.Signals = textkit.DetectHandlingSignals(response)
			handled.Handled = len(handled.Signals) > 0
			handled.Effectiveness = effectiveness(len(handled.Signals))
		} else {
			handled.Effectiveness = EffectivenessUnaddressed
		}
		handled.Score = effectivenessScore(handled.Effectiveness)
		a.Objections = append(a.Objections, handled)
	}

	if len(a.Objections) == 0 {
		a.Score = 100
		return a
	}

	var sum float64
	for _, obj := range a.Objections {
		sum += obj.Score
	}
	a.Score = sum / float64(len(a.Objections))
	return a
}

func nextRepTurn(turns []Turn, from int) (string, bool) {
	for _, t := range turns[from:] {
		if t.Speaker == SpeakerRep {
			return t.Message, true
		}
	}
	return "", false
}

// effectiveness maps the count of {acknowledge, value, evidence, follow-up
// question} classes in the response to a grade.
func effectiveness(signals int) ObjectionEffectiveness {
	switch {
	case signals >= 3:
		return EffectivenessExcellent
	case signals == 2:
		return EffectivenessGood
	case signals == 1:
		return EffectivenessFair
	default:
		return EffectivenessPoor
	}
}

func effectivenessScore(e ObjectionEffectiveness) float64 {
	switch e {
	case EffectivenessExcellent:
		return 100
	case EffectivenessGood:
		return 75
	case EffectivenessFair:
		return 50
	case EffectivenessPoor:
		return 25
	default: // unaddressed
		return 0
	}
}

func objectionDetail(a ObjectionAnalysis) string {
	if len(a.Objections) == 0 {
		return "no objections raised"
	}
	handled := 0
	for _, obj := range a.Objections {
		if obj.Handled {
			handled++
		}
	}
	return fmt.Sprintf("%d of %d objections handled", handled, len(a.Objections))
}
