package llm

import "context"

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Request contains the parameters for one completion call.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Response is the result of one completion call.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
	FinishReason string
}

// Provider is a generative backend. Implementations must honor ctx
// cancellation and return transport or quota failures as errors; they
// never decide fallback policy themselves.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
}
