package textkit

import "regexp"

// Topic tags an utterance with the sales-relevant subjects it touches.
type Topic string

const (
	TopicBudget          Topic = "budget"
	TopicTimeline        Topic = "timeline"
	TopicDecisionProcess Topic = "decision-process"
	TopicPainPoints      Topic = "pain-points"
)

var topicPatterns = map[Topic]*regexp.Regexp{
	TopicBudget:          regexp.MustCompile(`(?i)\b(budget|pricing|price|cost|spend|invest(ment)?|afford|how much)\b`),
	TopicTimeline:        regexp.MustCompile(`(?i)\b(timeline|timeframe|when (would|could|can|do)|by (q[1-4]|end of|next)|this (quarter|year|month)|deadline|roll[- ]?out)\b`),
	TopicDecisionProcess: regexp.MustCompile(`(?i)\b(decision[- ]?mak|who (else|decides|signs|approves|makes)|makes the (decision|call)|procurement|sign[- ]?off|stakeholders?|evaluation process|buying process)\b`),
	TopicPainPoints:      regexp.MustCompile(`(?i)\b(pain|challenge|problem|issue|struggl|frustrat|bottleneck|inefficien|manual|error[- ]?prone|time[- ]?consuming)\b`),
}

// Topics returns the tags present in the utterance, in a stable order.
func Topics(message string) []Topic {
	ordered := []Topic{TopicBudget, TopicTimeline, TopicDecisionProcess, TopicPainPoints}
	var out []Topic
	for _, topic := range ordered {
		if topicPatterns[topic].MatchString(message) {
			out = append(out, topic)
		}
	}
	return out
}

// HasTopic reports whether a single tag applies.
func HasTopic(message string, topic Topic) bool {
	pat, ok := topicPatterns[topic]
	return ok && pat.MatchString(message)
}
