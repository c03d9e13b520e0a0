package scoringworker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scoring"
)

type queueClient interface {
	Send(ctx context.Context, body string) error
	Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type queueMessage struct {
	ID            string
	Body          string
	ReceiptHandle string
}

// Job is one finished call waiting to be scored.
type Job struct {
	ID         string           `json:"id"`
	SessionID  string           `json:"session_id"`
	CallType   persona.CallType `json:"call_type"`
	Transcript []scoring.Entry  `json:"transcript"`
}

func encodeJob(job Job) (Job, string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	body, err := json.Marshal(job)
	if err != nil {
		return Job{}, "", fmt.Errorf("scoringworker: encode job: %w", err)
	}
	return job, string(body), nil
}
