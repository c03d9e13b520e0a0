package textkit

import (
	"regexp"
	"strings"
)

var fillerRE = regexp.MustCompile(`(?i)\b(um+|uh+|er+|like,|you know|i mean|sort of|kind of|basically|actually|literally|i guess)\b`)

var hedgingRE = regexp.MustCompile(`(?i)\b(maybe|perhaps|possibly|i think|i believe|i feel like|not sure|might be able|hopefully|we'll see|if that's ok(ay)?|sorry to bother)\b`)

// CountFillerWords counts filler tokens commonly read as nervousness.
func CountFillerWords(message string) int {
	return len(fillerRE.FindAllString(message, -1))
}

// CountHedges counts hedging phrases that undercut assertiveness.
func CountHedges(message string) int {
	return len(hedgingRE.FindAllString(message, -1))
}

// WordCount returns the whitespace token count, used to normalize filler
// density across transcripts of different lengths.
func WordCount(message string) int {
	return len(strings.Fields(message))
}
