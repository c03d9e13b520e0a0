package simulation

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is the provider-neutral message shape sent to text generators.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationParams bound a single prospect-reply generation.
type GenerationParams struct {
	Model       string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// LLMRequest carries a compiled directive plus the bounded history window.
type LLMRequest struct {
	Directive string
	Messages  []ChatMessage
	Params    GenerationParams
}

// LLMResponse is one candidate prospect reply.
type LLMResponse struct {
	Text       string
	StopReason string
}

// LLMClient generates prospect replies. Implementations must honor ctx
// cancellation; callers apply timeouts and treat failures as recoverable.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
