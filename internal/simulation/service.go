package simulation

import (
	"context"
	"time"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scenario"
)

// Status of a simulation session. Hangup is surfaced distinctly from a normal
// end so callers can present different feedback.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusHungUp    Status = "hung_up"
)

// StartRequest carries everything needed to open a session.
type StartRequest struct {
	SessionID  string                   `json:"session_id,omitempty"`
	Persona    persona.Config           `json:"persona"`
	Business   scenario.BusinessContext `json:"business"`
	Product    scenario.ProductContext  `json:"product"`
	CallType   persona.CallType         `json:"call_type"`
	Difficulty persona.DifficultyLevel  `json:"difficulty"`
}

// StartResponse acknowledges session creation. Greeting is set when the call
// type has the prospect speak first.
type StartResponse struct {
	SessionID string    `json:"session_id"`
	Greeting  string    `json:"greeting,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// TurnRequest is one rep utterance for an active session.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// TurnResponse carries the generated prospect reply and the visible slice of
// session state.
type TurnResponse struct {
	SessionID     string        `json:"session_id"`
	Reply         string        `json:"reply"`
	Phase         Phase         `json:"phase"`
	Status        Status        `json:"status"`
	HangupReason  string        `json:"hangup_reason,omitempty"`
	ResponseDelay time.Duration `json:"response_delay,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// EndResponse closes a session and hands back the transcript for scoring.
type EndResponse struct {
	SessionID  string `json:"session_id"`
	Status     Status `json:"status"`
	Transcript []Turn `json:"transcript"`
	State      State  `json:"state"`
	Memory     Memory `json:"memory"`
}

// Service is the session-facing surface of the simulation engine.
type Service interface {
	StartSession(ctx context.Context, req StartRequest) (*StartResponse, error)
	ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error)
	EndSession(ctx context.Context, sessionID string) (*EndResponse, error)
	GetHistory(ctx context.Context, sessionID string) ([]Turn, error)
}
