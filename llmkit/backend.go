package llmkit

import "context"

// Backend is the interface every provider adapter must implement. It executes
// one chat-completion call given a model identifier, a message sequence, and
// optional tool declarations.
type Backend interface {
	// Name returns the provider identifier (e.g. "openai", "anthropic").
	Name() string

	// ChatCompletion sends a blocking request and returns the completion.
	ChatCompletion(ctx context.Context, req Request) (*Completion, error)
}

// Optional methods that backends may implement.

// Closer is implemented by backends that hold resources.
type Closer interface {
	Close() error
}
