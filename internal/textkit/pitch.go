package textkit

import (
	"regexp"
	"strings"
)

var (
	valuePropRE = regexp.MustCompile(`(?i)\b(helps? (you|teams?|companies)|our (product|platform|solution|tool)|we (offer|provide|deliver|enable)|designed to|built (for|to)|cuts?|reduces?|saves?|increases?|improves?|automates?)\b`)

	closingRE = regexp.MustCompile(`(?i)\b(next steps?|schedule (a|another|the)|book (a|the)|set up (a|the)|(get|put) (something|time) on (the|your) calendar|follow[- ]?up (call|meeting)|send (over|you) (a|the) (proposal|contract|agreement)|move forward|sign (up|the)|does (tuesday|wednesday|thursday|friday|monday|next week) work|are you (free|available))\b`)

	buzzwordRE = regexp.MustCompile(`(?i)\b(synerg|disrupt|revolutioniz|game[- ]chang|cutting[- ]edge|best[- ]in[- ]class|paradigm|leverage our|world[- ]class|next[- ]gen|seamless(ly)? integrat|state[- ]of[- ]the[- ]art|ai[- ]powered everything|10x)\b`)

	smallTalkRE = regexp.MustCompile(`(?i)\b(how('s| is| are) (the weather|your (day|week(end)?)|things|it going)|did you (catch|watch|see) the (game|match)|crazy weather|happy (monday|friday))\b`)

	unprofessionalOpenerRE = regexp.MustCompile(`(?i)^\s*(hey (buddy|man|dude|girl|guys)|yo\b|what'?s up|sup\b|howdy partner)`)

	roiLanguageRE = regexp.MustCompile(`(?i)(\$\s?\d|\d+\s*%|\broi\b|\breturn on investment\b|\bpayback\b|\bmargin\b|\bcost savings?\b|\brevenue\b|\b\d+x\b)`)
)

// IsValueProp reports whether the utterance presents product value.
func IsValueProp(message string) bool {
	return valuePropRE.MatchString(message)
}

// IsClosingAttempt reports whether the rep is pushing toward a concrete next
// step.
func IsClosingAttempt(message string) bool {
	return closingRE.MatchString(message)
}

// HasBuzzwords reports generic pitch language that sophisticated prospects
// punish.
func HasBuzzwords(message string) bool {
	return buzzwordRE.MatchString(message)
}

// IsSmallTalk reports idle pleasantries unrelated to the prospect's business.
func IsSmallTalk(message string) bool {
	return smallTalkRE.MatchString(message)
}

// IsUnprofessionalOpener reports an opening line too casual for a business
// call.
func IsUnprofessionalOpener(message string) bool {
	return unprofessionalOpenerRE.MatchString(strings.TrimSpace(message))
}

// HasROILanguage reports numeric or financial framing: dollar figures,
// percentages, ROI vocabulary.
func HasROILanguage(message string) bool {
	return roiLanguageRE.MatchString(message)
}
