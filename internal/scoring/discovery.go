package scoring

import (
	"fmt"
	"strings"

	"github.com/pitchlab/salestrainer/internal/textkit"
)

// Component weights inside the discovery metric.
const (
	discoveryOpenWeight  = 0.40
	discoverySPINWeight  = 0.30
	discoveryDepthWeight = 0.30
)

// analyzeDiscovery grades the rep's questioning. A transcript with no rep
// questions scores 0 outright; there is no partial credit for statements.
func analyzeDiscovery(turns []Turn) DiscoveryAnalysis {
	a := DiscoveryAnalysis{SPINCounts: make(map[textkit.QuestionType]int)}

	var repText strings.Builder
	for _, t := range turns {
		if t.Speaker != SpeakerRep {
			continue
		}
		repText.WriteString(t.Message)
		repText.WriteString(" ")
		if !textkit.HasQuestion(t.Message) {
			continue
		}
		a.TotalQuestions++
		if textkit.IsOpenQuestion(t.Message) {
			a.OpenQuestions++
		}
		a.SPINCounts[textkit.ClassifyQuestion(t.Message)]++
	}

	if a.TotalQuestions == 0 {
		a.Depth = DepthSurface
		a.Score = 0
		return a
	}

	a.Depth = classifyDepth(repText.String())

	openScore := float64(a.OpenQuestions) / float64(a.TotalQuestions) * 100
	spinScore := float64(spinCategoriesHit(a.SPINCounts)) / 4 * 100
	a.Score = discoveryOpenWeight*openScore +
		discoverySPINWeight*spinScore +
		discoveryDepthWeight*depthScore(a.Depth)
	return a
}

// classifyDepth requires all three of business-impact, pain-exploration, and
// vision-building language for "deep"; either of the first two alone is
// "moderate".
func classifyDepth(repText string) DiscoveryDepth {
	impact := textkit.HasBusinessImpactLanguage(repText)
	pain := textkit.HasPainExplorationLanguage(repText)
	vision := textkit.HasVisionBuildingLanguage(repText)
	switch {
	case impact && pain && vision:
		return DepthDeep
	case impact || pain:
		return DepthModerate
	default:
		return DepthSurface
	}
}

func depthScore(d DiscoveryDepth) float64 {
	switch d {
	case DepthDeep:
		return 100
	case DepthModerate:
		return 60
	default:
		return 30
	}
}

// spinCategoriesHit counts how many of the four SPIN categories appear at
// least once. General questions earn no category credit.
func spinCategoriesHit(counts map[textkit.QuestionType]int) int {
	hit := 0
	for _, qt := range []textkit.QuestionType{
		textkit.QuestionSituation,
		textkit.QuestionProblem,
		textkit.QuestionImplication,
		textkit.QuestionNeedPayoff,
	} {
		if counts[qt] > 0 {
			hit++
		}
	}
	return hit
}

func discoveryDetail(a DiscoveryAnalysis) string {
	if a.TotalQuestions == 0 {
		return "no discovery questions asked"
	}
	return fmt.Sprintf("%d questions (%d open), %d of 4 SPIN categories, %s depth",
		a.TotalQuestions, a.OpenQuestions, spinCategoriesHit(a.SPINCounts), a.Depth)
}
