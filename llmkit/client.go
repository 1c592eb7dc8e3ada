package llmkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
)

// Middleware wraps a backend call. It receives the request and a next
// function that calls the downstream handler, and returns the completion.
type Middleware func(ctx context.Context, req Request, next func(context.Context, Request) (*Completion, error)) (*Completion, error)

// Client routes chat-completion requests to registered backends and applies
// middleware around every call. The backend is chosen from the request's
// Provider field, the client default, or the model catalog, in that order.
type Client struct {
	backends       map[string]Backend
	defaultBackend string
	middleware     []Middleware
	mu             sync.RWMutex
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBackend registers a backend under the given provider name.
func WithBackend(name string, backend Backend) ClientOption {
	return func(c *Client) {
		c.backends[name] = backend
	}
}

// WithDefaultBackend sets the default provider name.
func WithDefaultBackend(name string) ClientOption {
	return func(c *Client) {
		c.defaultBackend = name
	}
}

// WithMiddleware adds middleware to the client.
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(c *Client) {
		c.middleware = append(c.middleware, mw...)
	}
}

// NewClient creates a new Client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		backends: make(map[string]Backend),
	}
	for _, opt := range opts {
		opt(c)
	}
	// If no default and exactly one backend, use it.
	if c.defaultBackend == "" && len(c.backends) == 1 {
		for name := range c.backends {
			c.defaultBackend = name
		}
	}
	return c
}

// RegisterBackend adds a backend to the client.
func (c *Client) RegisterBackend(name string, backend Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backends[name] = backend
	if c.defaultBackend == "" {
		c.defaultBackend = name
	}
}

// resolveBackend determines which backend to use for a request.
func (c *Client) resolveBackend(req Request) (Backend, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name := req.Provider
	if name == "" {
		// Try to infer from the model catalog before falling back to the
		// default, so "claude-*" models reach anthropic even when openai
		// is the configured default.
		if info := GetModelInfo(req.Model); info != nil {
			if _, ok := c.backends[info.Provider]; ok {
				name = info.Provider
			}
		}
	}
	if name == "" {
		name = c.defaultBackend
	}
	if name == "" {
		return nil, &ConfigurationError{BackendError: BackendError{
			Message: "no provider specified and no default backend configured",
		}}
	}

	backend, ok := c.backends[name]
	if !ok {
		return nil, &ConfigurationError{BackendError: BackendError{
			Message: fmt.Sprintf("backend %q is not registered", name),
		}}
	}
	return backend, nil
}

// ChatCompletion sends a request through middleware to the resolved backend.
func (c *Client) ChatCompletion(ctx context.Context, req Request) (*Completion, error) {
	backend, err := c.resolveBackend(req)
	if err != nil {
		return nil, err
	}

	if req.Provider == "" {
		req.Provider = backend.Name()
	}

	handler := func(ctx context.Context, r Request) (*Completion, error) {
		return backend.ChatCompletion(ctx, r)
	}

	// Apply middleware in reverse order so first registered runs first.
	for i := len(c.middleware) - 1; i >= 0; i-- {
		mw := c.middleware[i]
		next := handler
		handler = func(ctx context.Context, r Request) (*Completion, error) {
			return mw(ctx, r, next)
		}
	}

	return handler(ctx, req)
}

// Close releases resources held by all registered backends.
func (c *Client) Close() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var firstErr error
	for _, backend := range c.backends {
		if closer, ok := backend.(Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ClientEnv holds environment-derived client settings.
type ClientEnv struct {
	Providers       []string `env:"AGENTRY_PROVIDERS" envSeparator:"," envDefault:"openai,anthropic"`
	DefaultProvider string   `env:"AGENTRY_DEFAULT_PROVIDER"`
	MaxTokens       int      `env:"AGENTRY_MAX_TOKENS" envDefault:"4096"`
	Temperature     float64  `env:"AGENTRY_TEMPERATURE" envDefault:"0.7"`
	MaxRetries      int      `env:"AGENTRY_MAX_RETRIES" envDefault:"2"`
}

// NewClientFromEnv creates a Client by parsing AGENTRY_* environment
// variables and creating a gollm backend for each configured provider.
// Provider API keys are read by gollm from its own environment variables.
// Providers whose backend cannot be constructed are skipped.
func NewClientFromEnv() (*Client, error) {
	var cfg ClientEnv
	if err := env.Parse(&cfg); err != nil {
		return nil, &ConfigurationError{BackendError: BackendError{
			Message: "invalid client environment", Cause: err,
		}}
	}

	policy := DefaultRetryPolicy()
	policy.MaxRetries = cfg.MaxRetries
	c := NewClient(WithMiddleware(RetryMiddleware(policy)))

	for _, provider := range cfg.Providers {
		backend, err := NewGollmBackend(provider, "",
			WithMaxTokens(cfg.MaxTokens),
			WithTemperature(cfg.Temperature),
		)
		if err != nil {
			continue
		}
		c.RegisterBackend(provider, backend)
	}

	if cfg.DefaultProvider != "" {
		c.defaultBackend = cfg.DefaultProvider
	}
	return c, nil
}
