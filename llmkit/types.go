package llmkit

import (
	"encoding/json"
)

// Role identifies who produced a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is the fundamental unit of conversation. Ordering within a
// conversation is significant and is preserved exactly as appended.
type Message struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// SystemMessage creates a system Message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user Message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage creates an assistant Message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// ToolMessage creates a tool-role Message carrying serialized tool results.
func ToolMessage(content string) Message {
	return Message{Role: RoleTool, Content: content}
}

// ToolCall is a model-initiated tool invocation request.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolDefinition describes a tool in the provider function-calling format.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Usage tracks token consumption for one completion.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add returns a new Usage that is the sum of u and other.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}

// Request is the input to one chat-completion call.
type Request struct {
	Model       string           `json:"model"`
	Messages    []Message        `json:"messages"`
	Provider    string           `json:"provider,omitempty"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	Stream      bool             `json:"stream,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
	MaxTokens   *int             `json:"max_tokens,omitempty"`
}

// CompletionKind is the discriminator tag for Completion.
type CompletionKind string

const (
	// CompletionText is a plain-text response with no tool activity.
	CompletionText CompletionKind = "text"
	// CompletionStructured is a response carrying tool-call requests
	// alongside any text content.
	CompletionStructured CompletionKind = "structured"
)

// Completion is the tagged variant returned by every backend: either plain
// text or a structured response with tool-call requests. ToolCalls is
// populated only when Kind is CompletionStructured.
type Completion struct {
	ID        string         `json:"id"`
	Kind      CompletionKind `json:"kind"`
	Model     string         `json:"model"`
	Provider  string         `json:"provider"`
	Content   string         `json:"content"`
	ToolCalls []ToolCall     `json:"tool_calls,omitempty"`
	Usage     Usage          `json:"usage"`
}

// TextCompletion creates a plain-text Completion.
func TextCompletion(content string) *Completion {
	return &Completion{Kind: CompletionText, Content: content}
}

// StructuredCompletion creates a Completion carrying tool-call requests.
// With no calls it degrades to a text completion.
func StructuredCompletion(content string, calls []ToolCall) *Completion {
	if len(calls) == 0 {
		return TextCompletion(content)
	}
	return &Completion{Kind: CompletionStructured, Content: content, ToolCalls: calls}
}

// HasToolCalls reports whether the completion requests any tool invocations.
func (c Completion) HasToolCalls() bool {
	return c.Kind == CompletionStructured && len(c.ToolCalls) > 0
}
