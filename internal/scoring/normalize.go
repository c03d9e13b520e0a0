package scoring

import (
	"strings"
	"time"
)

// Entry is the loose external transcript shape the recording pipeline emits.
// Field aliases (Role vs Speaker, Text vs Message) are reconciled here, once;
// the rest of the package only ever sees the canonical Turn.
type Entry struct {
	Speaker   string    `json:"speaker,omitempty"`
	Role      string    `json:"role,omitempty"`
	Message   string    `json:"message,omitempty"`
	Text      string    `json:"text,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// speakerAliases maps the speaker vocabularies seen upstream onto ours.
var speakerAliases = map[string]string{
	"rep":       SpeakerRep,
	"sales_rep": SpeakerRep,
	"salesrep":  SpeakerRep,
	"user":      SpeakerRep,
	"human":     SpeakerRep,
	"prospect":  SpeakerProspect,
	"customer":  SpeakerProspect,
	"assistant": SpeakerProspect,
	"ai":        SpeakerProspect,
}

// Normalize maps one loose entry into a canonical Turn. Missing speakers
// become "unknown" and missing messages become empty strings; partial or
// corrupt transcripts are expected input, not an error.
func Normalize(e Entry) Turn {
	speaker := e.Speaker
	if speaker == "" {
		speaker = e.Role
	}
	if canonical, ok := speakerAliases[strings.ToLower(strings.TrimSpace(speaker))]; ok {
		speaker = canonical
	} else {
		speaker = SpeakerUnknown
	}

	message := e.Message
	if message == "" {
		message = e.Text
	}
	if message == "" {
		message = e.Content
	}

	return Turn{Speaker: speaker, Message: message, Timestamp: e.Timestamp}
}

// NormalizeAll maps a whole external transcript.
func NormalizeAll(entries []Entry) []Turn {
	turns := make([]Turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, Normalize(e))
	}
	return turns
}
