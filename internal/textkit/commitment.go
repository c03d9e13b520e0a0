package textkit

import "regexp"

var commitmentRE = regexp.MustCompile(`(?i)\b(send (me )?(the|an) (invite|calendar)|let's (do|book|schedule)|works for me|i('ll| will) (be there|join|make time|take a look)|sounds good,? (let's|book)|go ahead and (book|schedule)|put (it|me) on the calendar|deal\b|count me in)`)

// IsCommitment reports whether a prospect utterance agrees to a concrete next
// step.
func IsCommitment(message string) bool {
	return commitmentRE.MatchString(message)
}
