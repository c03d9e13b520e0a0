package textkit

import (
	"regexp"
	"strings"
)

var (
	budgetFigureRE   = regexp.MustCompile(`(?i)\$\s?\d[\d,]*(\.\d+)?\s*(k|m|million|thousand)?|\b\d[\d,]*\s*(dollars|bucks)\b|\bbudget (of|is|around|about)\s+\S+`)
	timelineRE       = regexp.MustCompile(`(?i)\b(next|this|within (the next)?)\s+(few\s+)?(week|month|quarter|year)s?\b|\bq[1-4]\b|\bby (january|february|march|april|may|june|july|august|september|october|november|december|year[- ]end)\b`)
	companySizeRE    = regexp.MustCompile(`(?i)\b\d[\d,]*\s*(employees|people|seats|users|reps|locations|stores|drivers)\b`)
	decisionPhraseRE = regexp.MustCompile(`(?i)\b((my|the|our)\s+(boss|cfo|ceo|cto|vp|board|committee|team|manager)\s+(signs off|approves|decides|has to approve|makes the call)|procurement (handles|reviews)|need (sign[- ]?off|approval) from [^.?!]*)`)
)

// RevealedInfo is what a prospect turn gave away. Empty fields mean nothing
// was detected; callers merge non-empty fields over earlier values.
type RevealedInfo struct {
	Budget          string
	Timeline        string
	CompanySize     string
	DecisionProcess string
}

// ExtractRevealedInfo pattern-matches budget figures, time horizons, company
// size mentions, and decision-process phrases out of a prospect utterance.
func ExtractRevealedInfo(message string) RevealedInfo {
	var info RevealedInfo
	if m := budgetFigureRE.FindString(message); m != "" {
		info.Budget = strings.TrimSpace(m)
	}
	if m := timelineRE.FindString(message); m != "" {
		info.Timeline = strings.TrimSpace(m)
	}
	if m := companySizeRE.FindString(message); m != "" {
		info.CompanySize = strings.TrimSpace(m)
	}
	if m := decisionPhraseRE.FindString(message); m != "" {
		info.DecisionProcess = strings.TrimSpace(m)
	}
	return info
}

// Empty reports whether nothing was extracted.
func (r RevealedInfo) Empty() bool {
	return r.Budget == "" && r.Timeline == "" && r.CompanySize == "" && r.DecisionProcess == ""
}
