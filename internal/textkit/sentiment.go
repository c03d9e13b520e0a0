package textkit

import (
	"regexp"
	"strings"
)

// SentimentLabel is a coarse three-way reading of an utterance.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

var positiveWords = []string{
	"great", "good", "excellent", "love", "like", "interesting", "helpful",
	"perfect", "awesome", "appreciate", "thanks", "thank you", "sounds good",
	"makes sense", "absolutely", "definitely", "excited", "valuable",
}

var negativeWords = []string{
	"no", "not", "never", "waste", "expensive", "busy", "annoying", "stop",
	"hate", "bad", "terrible", "frustrated", "frustrating", "useless",
	"pointless", "unhappy", "disappointed", "skeptical", "doubt",
}

var wordBoundaryCache = map[string]*regexp.Regexp{}

func init() {
	for _, w := range append(append([]string{}, positiveWords...), negativeWords...) {
		wordBoundaryCache[w] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
}

// Sentiment counts positive and negative keyword hits and returns the label
// plus both counts. Empty input is neutral.
func Sentiment(message string) (SentimentLabel, int, int) {
	message = strings.TrimSpace(message)
	if message == "" {
		return SentimentNeutral, 0, 0
	}

	var pos, neg int
	for _, w := range positiveWords {
		if wordBoundaryCache[w].MatchString(message) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if wordBoundaryCache[w].MatchString(message) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return SentimentPositive, pos, neg
	case neg > pos:
		return SentimentNegative, pos, neg
	default:
		return SentimentNeutral, pos, neg
	}
}
