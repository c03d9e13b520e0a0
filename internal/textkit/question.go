// Package textkit holds the keyword/regex detectors shared by the conversation
// state machine and the scoring engine. Every detector is a pure function of
// its input phrase so it can be tested in isolation.
package textkit

import (
	"regexp"
	"strings"
)

// QuestionType classifies a discovery question per the SPIN methodology.
type QuestionType string

const (
	QuestionNone        QuestionType = ""
	QuestionSituation   QuestionType = "situation"
	QuestionProblem     QuestionType = "problem"
	QuestionImplication QuestionType = "implication"
	QuestionNeedPayoff  QuestionType = "need-payoff"
	QuestionGeneral     QuestionType = "general"
)

var (
	problemQuestionRE = regexp.MustCompile(`(?i)\b(challenge|problem|issue|pain|struggl|difficult|frustrat|bottleneck|broken|failing)\b`)
	implicationRE     = regexp.MustCompile(`(?i)\b(impact|affect|consequence|cost(s|ing)? you|lose|losing|risk|what happens (if|when)|how much time|how does that)\b`)
	needPayoffRE      = regexp.MustCompile(`(?i)\b(would it help|how valuable|what would it mean|if you could|imagine if|how useful|benefit)\b`)
	situationRE       = regexp.MustCompile(`(?i)\b(how many|how do you (currently|typically|usually)|what (tools?|systems?|process)|who (handles|owns|manages)|tell me about your)\b`)

	openQuestionRE = regexp.MustCompile(`(?i)^\s*(what|how|why|tell me|walk me|describe|who|where|when)\b`)
)

// HasQuestion reports whether the utterance contains a question.
func HasQuestion(message string) bool {
	return strings.Contains(message, "?")
}

// ClassifyQuestion returns the SPIN category of a question, or QuestionNone if
// the utterance carries no question at all. Priority runs need-payoff >
// implication > problem > situation so the rarer, higher-skill categories are
// not swallowed by generic keyword overlap.
func ClassifyQuestion(message string) QuestionType {
	if !HasQuestion(message) {
		return QuestionNone
	}
	switch {
	case needPayoffRE.MatchString(message):
		return QuestionNeedPayoff
	case implicationRE.MatchString(message):
		return QuestionImplication
	case problemQuestionRE.MatchString(message):
		return QuestionProblem
	case situationRE.MatchString(message):
		return QuestionSituation
	default:
		return QuestionGeneral
	}
}

// IsOpenQuestion reports whether at least one question in the utterance
// invites a narrative answer rather than a yes/no.
func IsOpenQuestion(message string) bool {
	for _, clause := range questionClauses(message) {
		if openQuestionRE.MatchString(clause) {
			return true
		}
	}
	return false
}

// questionClauses returns each clause that ends in a question mark, stripped
// down to what follows the previous sentence boundary.
func questionClauses(message string) []string {
	var clauses []string
	for _, chunk := range strings.Split(message, "?") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if idx := strings.LastIndexAny(chunk, ".!;"); idx >= 0 {
			chunk = strings.TrimSpace(chunk[idx+1:])
		}
		if chunk != "" {
			clauses = append(clauses, chunk)
		}
	}
	// The split drops trailing text after the final "?", which is fine: that
	// text is not a question.
	if !strings.Contains(message, "?") {
		return nil
	}
	if len(clauses) > 0 && !strings.HasSuffix(strings.TrimSpace(message), "?") {
		clauses = clauses[:len(clauses)-1]
	}
	return clauses
}
