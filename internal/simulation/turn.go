package simulation

import "time"

// Speaker identifies which side of the call produced a turn.
type Speaker string

const (
	SpeakerRep      Speaker = "rep"
	SpeakerProspect Speaker = "prospect"
	SpeakerUnknown  Speaker = "unknown"
)

// Turn is one atomic utterance. Immutable after creation. IDs and timestamps
// come from the caller; the engine treats them as opaque.
type Turn struct {
	ID        string            `json:"id"`
	Speaker   Speaker           `json:"speaker"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Phase     Phase             `json:"phase"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
