package scoring

import (
	"fmt"

	"github.com/pitchlab/salestrainer/internal/textkit"
)

// metricLabel turns metric identifiers into coaching prose.
var metricLabel = map[string]string{
	MetricTalkRatio:         "talk ratio",
	MetricDiscovery:         "discovery questioning",
	MetricObjectionHandling: "objection handling",
	MetricConfidence:        "confident delivery",
	MetricCallToAction:      "call-to-action",
}

// improvementTemplate is the fixed coaching copy for one weak metric.
type improvementTemplate struct {
	issue      string
	suggestion string
	example    string
}

var improvementTemplates = map[string]improvementTemplate{
	MetricTalkRatio: {
		issue:      "Your share of the conversation was outside the ideal range for this call type.",
		suggestion: "Ask a question, then stop talking. Let silence do some of the work.",
		example:    "Instead of explaining a feature for a minute, ask \"How are you handling that today?\" and wait.",
	},
	MetricDiscovery: {
		issue:      "The call surfaced little about the prospect's situation, problems, or their cost.",
		suggestion: "Lead with open questions and follow the SPIN ladder: situation, problem, implication, need-payoff.",
		example:    "\"What happens to the team's week when the dispatch plan slips?\" digs where \"Do you have issues?\" cannot.",
	},
	MetricObjectionHandling: {
		issue:      "Objections were brushed past or answered without acknowledgment or evidence.",
		suggestion: "Acknowledge first, then bring value or proof, then check back with a question.",
		example:    "\"That's fair. Other customers felt the same until they saw the payback inside a quarter. What would the number need to be?\"",
	},
	MetricConfidence: {
		issue:      "Filler words and hedging language undercut the message.",
		suggestion: "Trade \"I think we could maybe\" for short declarative sentences. Pause instead of filling.",
		example:    "\"This cuts planning time in half\" lands harder than \"it could, you know, sort of help with planning\".",
	},
	MetricCallToAction: {
		issue:      "The call ended without a concrete, agreed next step.",
		suggestion: "Propose one specific step with a time on it, and get an explicit yes.",
		example:    "\"Does Tuesday at 2pm work for a 30 minute demo with your ops lead?\"",
	},
}

// partialAnalysisNote is appended to the summary when the generative pass did
// not contribute, so the report is never mistaken for a full AI-graded one.
const partialAnalysisNote = "Note: automated coaching was unavailable for this call; this report reflects deterministic analysis only."

// buildCoaching assembles the narrative block. The summary and improvement
// items are templated off the deterministic numbers; a generative narrative,
// when present, supplies the free-text extras.
func buildCoaching(score *CallScore, narrative *Narrative) CoachingFeedback {
	best, worst := bestAndWorst(score.Metrics)

	summary := fmt.Sprintf("Overall %.0f/100. Strongest area: %s (%.0f). Biggest opportunity: %s (%.0f).",
		score.Overall, metricLabel[best.Name], best.Score, metricLabel[worst.Name], worst.Score)

	fb := CoachingFeedback{}
	for _, weak := range weakMetrics(score.Metrics) {
		tmpl := improvementTemplates[weak.Name]
		fb.Improvements = append(fb.Improvements, Improvement{
			Metric:     weak.Name,
			Score:      weak.Score,
			Priority:   improvementPriority(weak.Score),
			Issue:      tmpl.issue,
			Suggestion: tmpl.suggestion,
			Example:    tmpl.example,
		})
	}

	if narrative != nil {
		if narrative.Summary != "" {
			summary = summary + " " + narrative.Summary
		}
		fb.MissedOpportunities = narrative.MissedOpportunities
		fb.NextCallPrep = narrative.NextCallPrep
		fb.PracticeRecs = narrative.PracticeRecs
	} else {
		summary = summary + " " + partialAnalysisNote
		fb.MissedOpportunities = deterministicMissedOpportunities(score)
		fb.PracticeRecs = deterministicPracticeRecs(fb.Improvements)
	}

	fb.Summary = summary
	return fb
}

func bestAndWorst(ms []MetricScore) (best, worst MetricScore) {
	best, worst = ms[0], ms[0]
	for _, m := range ms[1:] {
		if m.Score > best.Score {
			best = m
		}
		if m.Score < worst.Score {
			worst = m
		}
	}
	return best, worst
}

// deterministicMissedOpportunities names concrete misses visible in the
// sub-analyses without any generative help.
func deterministicMissedOpportunities(score *CallScore) []string {
	var out []string
	for _, obj := range score.Objection.Objections {
		if obj.Effectiveness == EffectivenessUnaddressed {
			out = append(out, fmt.Sprintf("A %s objection was never addressed.", obj.Category))
		}
	}
	if score.Discovery.TotalQuestions > 0 && score.Discovery.SPINCounts[textkit.QuestionNeedPayoff] == 0 {
		out = append(out, "No need-payoff question was asked; the prospect never articulated the value themselves.")
	}
	if score.CTA.Attempted && !score.CTA.Agreed {
		out = append(out, "A next step was proposed but never confirmed by the prospect.")
	}
	return out
}

func deterministicPracticeRecs(improvements []Improvement) []string {
	var out []string
	for _, imp := range improvements {
		out = append(out, fmt.Sprintf("Drill %s: %s", metricLabel[imp.Metric], imp.Suggestion))
	}
	return out
}
