package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/pitchlab/salestrainer/internal/persona"
)

const coachingSchemaName = "call_coaching_v1"

// analystChatAPI is the slice of the OpenAI client the analyst needs.
type analystChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAnalyst asks a chat model for coaching narrative in a strict JSON
// schema. Anything malformed is discarded; the caller falls back to the
// deterministic-only report.
type OpenAIAnalyst struct {
	client analystChatAPI
	model  string
}

// NewOpenAIAnalyst wraps an OpenAI client for the generative scoring pass.
func NewOpenAIAnalyst(client *openai.Client, model string) *OpenAIAnalyst {
	if client == nil {
		panic("scoring: openai client cannot be nil")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAnalyst{client: client, model: model}
}

var _ Analyst = (*OpenAIAnalyst)(nil)

var coachingSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"summary": {
			Type:        jsonschema.String,
			Description: "Two to three sentence coaching summary of the call.",
		},
		"missed_opportunities": {
			Type:  jsonschema.Array,
			Items: &jsonschema.Definition{Type: jsonschema.String},
		},
		"next_call_prep": {
			Type:  jsonschema.Array,
			Items: &jsonschema.Definition{Type: jsonschema.String},
		},
		"practice_recommendations": {
			Type:  jsonschema.Array,
			Items: &jsonschema.Definition{Type: jsonschema.String},
		},
	},
	Required:             []string{"summary", "missed_opportunities", "next_call_prep", "practice_recommendations"},
	AdditionalProperties: false,
}

const analystSystemPrompt = `You are a sales coach reviewing a practice call transcript.
The rep is training; the prospect is simulated. Give direct, specific coaching
grounded in lines from the transcript. Respond only in the required JSON shape.`

// Analyze serializes the transcript as speaker-tagged lines and requests the
// coaching narrative under the strict schema.
func (a *OpenAIAnalyst) Analyze(ctx context.Context, turns []Turn, callType persona.CallType) (*Narrative, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analystSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: analystUserPrompt(turns, callType)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   coachingSchemaName,
				Schema: &coachingSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scoring: coaching completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("scoring: coaching completion returned no choices")
	}

	var narrative Narrative
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &narrative); err != nil {
		return nil, fmt.Errorf("scoring: malformed coaching payload: %w", err)
	}
	if strings.TrimSpace(narrative.Summary) == "" {
		return nil, fmt.Errorf("scoring: coaching payload missing summary")
	}
	return &narrative, nil
}

func analystUserPrompt(turns []Turn, callType persona.CallType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Call type: %s\n\nTranscript:\n", callType)
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Speaker, t.Message)
	}
	return b.String()
}
