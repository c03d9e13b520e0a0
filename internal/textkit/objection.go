package textkit

import (
	"regexp"
	"strings"
)

// ObjectionCategory labels the kind of pushback a prospect raised.
type ObjectionCategory string

const (
	ObjectionNone        ObjectionCategory = ""
	ObjectionPrice       ObjectionCategory = "price"
	ObjectionTiming      ObjectionCategory = "timing"
	ObjectionAuthority   ObjectionCategory = "authority"
	ObjectionCompetitor  ObjectionCategory = "competitor"
	ObjectionNoNeed      ObjectionCategory = "no-need"
	ObjectionSkepticism  ObjectionCategory = "skepticism"
	ObjectionBrushOff    ObjectionCategory = "brush-off"
)

type objectionPattern struct {
	regex    *regexp.Regexp
	category ObjectionCategory
}

// Ordered by specificity; first match wins.
var objectionPatterns = []objectionPattern{
	{regexp.MustCompile(`(?i)\b(too expensive|can't afford|cannot afford|no budget|budget.{0,20}(frozen|cut|tight)|costs? too much|pricey|out of our price)\b`), ObjectionPrice},
	{regexp.MustCompile(`(?i)\b(not a priority|bad timing|not the right time|maybe (next|later)|next (quarter|year)|too busy right now|circle back)\b`), ObjectionTiming},
	{regexp.MustCompile(`(?i)\b(not my (call|decision)|have to (ask|check with|run (this|it) by)|my (boss|manager|team) (decides|would)|above my pay grade)\b`), ObjectionAuthority},
	{regexp.MustCompile(`(?i)\b(already (use|have|work with)|current (vendor|provider|solution)|happy with (what|our)|under contract)\b`), ObjectionCompetitor},
	{regexp.MustCompile(`(?i)\b(don't need|do not need|no need|not (looking|interested)|doesn't apply to us|we're fine|we are fine)\b`), ObjectionNoNeed},
	{regexp.MustCompile(`(?i)\b(prove it|hard to believe|sounds too good|skeptical|heard (that|this) before|everyone says that|doubt)\b`), ObjectionSkepticism},
	{regexp.MustCompile(`(?i)\b(send me (an email|some info|something)|just email me|call me (later|back later)|not a good time)\b`), ObjectionBrushOff},
}

// DetectObjection returns the category of the first objection pattern found,
// or ObjectionNone.
func DetectObjection(message string) ObjectionCategory {
	message = strings.TrimSpace(message)
	if message == "" {
		return ObjectionNone
	}
	for _, pat := range objectionPatterns {
		if pat.regex.MatchString(message) {
			return pat.category
		}
	}
	return ObjectionNone
}

// HandlingSignal is one of the phrase classes a good objection response shows.
type HandlingSignal string

const (
	SignalAcknowledge      HandlingSignal = "acknowledge"
	SignalValueMention     HandlingSignal = "value"
	SignalEvidenceMention  HandlingSignal = "evidence"
	SignalFollowUpQuestion HandlingSignal = "follow-up-question"
)

var (
	acknowledgeRE = regexp.MustCompile(`(?i)\b(i (understand|hear you|get (that|it))|that's (fair|a fair point|valid)|makes sense|totally fair|appreciate (you|that)|good point|great question)\b`)
	valueRE       = regexp.MustCompile(`(?i)\b(value|save[sd]? (time|money)|saving|roi|return on|pay[s]? for itself|worth|benefit|improve|reduce[sd]? cost)\b`)
	evidenceRE    = regexp.MustCompile(`(?i)\b(other (clients|customers|teams|companies)|case stud|for example|we've seen|we have seen|on average|in our experience|data shows|\d+\s*%)\b`)
)

// DetectHandlingSignals returns which of the four response phrase classes
// appear in a rep's reply to an objection.
func DetectHandlingSignals(message string) []HandlingSignal {
	var signals []HandlingSignal
	if acknowledgeRE.MatchString(message) {
		signals = append(signals, SignalAcknowledge)
	}
	if valueRE.MatchString(message) {
		signals = append(signals, SignalValueMention)
	}
	if evidenceRE.MatchString(message) {
		signals = append(signals, SignalEvidenceMention)
	}
	if HasQuestion(message) {
		signals = append(signals, SignalFollowUpQuestion)
	}
	return signals
}

// IsObjectionHandling reports whether the utterance reads as an attempt to
// work through a previously raised objection.
func IsObjectionHandling(message string) bool {
	return acknowledgeRE.MatchString(message) && (valueRE.MatchString(message) || evidenceRE.MatchString(message) || HasQuestion(message))
}
