package scoring

import (
	"regexp"

	"github.com/pitchlab/salestrainer/internal/textkit"
)

// CTA component points: presence, then specificity and prospect agreement.
const (
	ctaPresencePoints    = 50.0
	ctaSpecificityPoints = 25.0
	ctaAgreementPoints   = 25.0
)

// ctaSpecificRE marks an ask tied to a concrete artifact or time slot rather
// than a vague "let's talk soon".
var ctaSpecificRE = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|tomorrow|next week|this week|\d{1,2}(:\d{2})?\s*(am|pm)|demo|proposal|contract|trial|pilot|30 minutes|half an hour)\b`)

// analyzeCTA finds the rep's last closing attempt and grades it on presence,
// specificity, and whether the prospect agreed afterwards.
func analyzeCTA(turns []Turn) CTAAnalysis {
	var a CTAAnalysis
	attemptIdx := -1
	for i, t := range turns {
		if t.Speaker == SpeakerRep && textkit.IsClosingAttempt(t.Message) {
			a.Attempted = true
			a.Attempt = t.Message
			attemptIdx = i
		}
	}
	if !a.Attempted {
		a.Score = 0
		return a
	}

	a.Specific = ctaSpecificRE.MatchString(a.Attempt)
	for _, t := range turns[attemptIdx+1:] {
		if t.Speaker == SpeakerProspect && textkit.IsCommitment(t.Message) {
			a.Agreed = true
			break
		}
	}

	a.Score = ctaPresencePoints
	if a.Specific {
		a.Score += ctaSpecificityPoints
	}
	if a.Agreed {
		a.Score += ctaAgreementPoints
	}
	return a
}

func ctaDetail(a CTAAnalysis) string {
	switch {
	case !a.Attempted:
		return "no call-to-action attempted"
	case a.Agreed:
		return "call-to-action made and accepted"
	case a.Specific:
		return "specific call-to-action made, no commitment secured"
	default:
		return "call-to-action made but vague"
	}
}
