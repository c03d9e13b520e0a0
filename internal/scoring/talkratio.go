package scoring

import (
	"fmt"

	"github.com/pitchlab/salestrainer/internal/persona"
)

// analyzeTalkRatio compares the rep's share of turns against the call-type
// ideal band. Scoring is symmetric: only the absolute distance to the nearest
// band edge matters, so talking too much and too little are penalized alike.
func analyzeTalkRatio(turns []Turn, band persona.TalkRatioBand) TalkRatioAnalysis {
	a := TalkRatioAnalysis{IdealBand: band}
	for _, t := range turns {
		switch t.Speaker {
		case SpeakerRep:
			a.RepTurns++
		case SpeakerProspect:
			a.ProspectTurns++
		}
	}
	a.TotalTurns = a.RepTurns + a.ProspectTurns
	if a.TotalTurns == 0 {
		a.Score = 0
		return a
	}

	a.RepPercent = float64(a.RepTurns) / float64(a.TotalTurns) * 100
	a.Deviation = bandDeviation(a.RepPercent, band)
	a.Score = talkRatioScore(a.Deviation)
	return a
}

func bandDeviation(percent float64, band persona.TalkRatioBand) float64 {
	switch {
	case percent < band.Low:
		return band.Low - percent
	case percent > band.High:
		return percent - band.High
	default:
		return 0
	}
}

// talkRatioScore applies the graduated rubric: exactly in band (edges
// included) is 100, then stepped penalties at 5/10/20/30-point deviations.
func talkRatioScore(deviation float64) float64 {
	switch {
	case deviation == 0:
		return 100
	case deviation < 5:
		return 85
	case deviation < 10:
		return 70
	case deviation < 20:
		return 45
	case deviation < 30:
		return 25
	default:
		return 0
	}
}

func talkRatioDetail(a TalkRatioAnalysis) string {
	return fmt.Sprintf("rep spoke %.0f%% of %d turns (ideal %.0f-%.0f%%)",
		a.RepPercent, a.TotalTurns, a.IdealBand.Low, a.IdealBand.High)
}
