package scoring

import (
	"fmt"

	"github.com/pitchlab/salestrainer/internal/textkit"
)

// Delivery penalties, applied per occurrence per 100 words and capped so one
// bad habit cannot zero the metric on its own.
const (
	fillerPenaltyPerDensity = 10.0
	fillerPenaltyCap        = 45.0
	hedgePenaltyPerDensity  = 8.0
	hedgePenaltyCap         = 35.0
)

// analyzeConfidence measures delivery across all rep turns: filler words and
// hedging language per 100 spoken words, subtracted from a perfect score.
func analyzeConfidence(turns []Turn) ConfidenceAnalysis {
	var a ConfidenceAnalysis
	for _, t := range turns {
		if t.Speaker != SpeakerRep {
			continue
		}
		a.WordCount += textkit.WordCount(t.Message)
		a.FillerCount += textkit.CountFillerWords(t.Message)
		a.HedgeCount += textkit.CountHedges(t.Message)
	}

	if a.WordCount == 0 {
		a.Score = 0
		return a
	}

	a.FillerDensity = float64(a.FillerCount) / float64(a.WordCount) * 100
	a.HedgeDensity = float64(a.HedgeCount) / float64(a.WordCount) * 100

	fillerPenalty := min(a.FillerDensity*fillerPenaltyPerDensity, fillerPenaltyCap)
	hedgePenalty := min(a.HedgeDensity*hedgePenaltyPerDensity, hedgePenaltyCap)

	a.Score = 100 - fillerPenalty - hedgePenalty
	if a.Score < 0 {
		a.Score = 0
	}
	return a
}

func confidenceDetail(a ConfidenceAnalysis) string {
	return fmt.Sprintf("%d fillers and %d hedges across %d words",
		a.FillerCount, a.HedgeCount, a.WordCount)
}
