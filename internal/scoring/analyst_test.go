package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pitchlab/salestrainer/internal/persona"
)

type stubChatAPI struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (s *stubChatAPI) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestOpenAIAnalystParsesNarrative(t *testing.T) {
	stub := &stubChatAPI{content: `{
		"summary": "Tighten the close.",
		"missed_opportunities": ["Never asked about budget."],
		"next_call_prep": ["Bring pricing tiers."],
		"practice_recommendations": ["Drill the CTA."]
	}`}
	analyst := &OpenAIAnalyst{client: stub, model: "test-model"}

	narrative, err := analyst.Analyze(context.Background(), mixedTranscript(), persona.CallDiscoveryOutbound)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if narrative.Summary != "Tighten the close." {
		t.Errorf("Summary = %q", narrative.Summary)
	}
	if len(narrative.MissedOpportunities) != 1 {
		t.Errorf("MissedOpportunities = %v", narrative.MissedOpportunities)
	}

	if stub.lastReq.ResponseFormat == nil || stub.lastReq.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Error("request did not pin the JSON schema response format")
	}
	prompt := stub.lastReq.Messages[len(stub.lastReq.Messages)-1].Content
	if !strings.Contains(prompt, "rep:") || !strings.Contains(prompt, "prospect:") {
		t.Error("transcript not serialized as speaker-tagged lines")
	}
}

func TestOpenAIAnalystRejectsMalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "the rep did fine"},
		{"missing summary", `{"summary": "  ", "missed_opportunities": [], "next_call_prep": [], "practice_recommendations": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyst := &OpenAIAnalyst{client: &stubChatAPI{content: tt.content}, model: "test-model"}
			if _, err := analyst.Analyze(context.Background(), mixedTranscript(), persona.CallDiscoveryOutbound); err == nil {
				t.Error("malformed payload must be rejected")
			}
		})
	}
}

func TestOpenAIAnalystPropagatesErrors(t *testing.T) {
	analyst := &OpenAIAnalyst{client: &stubChatAPI{err: errors.New("rate limited")}, model: "test-model"}
	if _, err := analyst.Analyze(context.Background(), mixedTranscript(), persona.CallDiscoveryOutbound); err == nil {
		t.Error("transport error must be surfaced to the caller")
	}
}
