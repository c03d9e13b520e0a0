package simulation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type chatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAILLMClient generates prospect replies through the OpenAI chat API.
type OpenAILLMClient struct {
	api chatCompletionAPI
}

// NewOpenAILLMClient wraps an OpenAI-compatible chat client.
func NewOpenAILLMClient(api chatCompletionAPI) *OpenAILLMClient {
	if api == nil {
		panic("simulation: openai chat client cannot be nil")
	}
	return &OpenAILLMClient{api: api}
}

func (c *OpenAILLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	if strings.TrimSpace(req.Params.Model) == "" {
		return LLMResponse{}, errors.New("simulation: openai model is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.Directive) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.Directive,
		})
	}
	for _, msg := range req.Messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		role, err := openAIRole(msg.Role)
		if err != nil {
			return LLMResponse{}, err
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: content})
	}

	request := openai.ChatCompletionRequest{
		Model:    req.Params.Model,
		Messages: messages,
	}
	if req.Params.MaxTokens > 0 {
		request.MaxTokens = int(req.Params.MaxTokens)
	}
	if req.Params.Temperature >= 0 {
		request.Temperature = req.Params.Temperature
	}
	if req.Params.TopP > 0 {
		request.TopP = req.Params.TopP
	}

	resp, err := c.api.CreateChatCompletion(ctx, request)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("simulation: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return LLMResponse{}, errors.New("simulation: openai returned no choices")
	}

	choice := resp.Choices[0]
	return LLMResponse{
		Text:       strings.TrimSpace(choice.Message.Content),
		StopReason: string(choice.FinishReason),
	}, nil
}

func openAIRole(role string) (string, error) {
	switch role {
	case ChatRoleSystem:
		return openai.ChatMessageRoleSystem, nil
	case ChatRoleUser:
		return openai.ChatMessageRoleUser, nil
	case ChatRoleAssistant:
		return openai.ChatMessageRoleAssistant, nil
	default:
		return "", fmt.Errorf("simulation: unsupported role %q", role)
	}
}
