package llmkit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/teilomillet/gollm"
)

// GollmBackend wraps a gollm.LLM instance and implements Backend. It
// translates between llmkit types and gollm's API.
type GollmBackend struct {
	provider string
	llm      gollm.LLM
	model    string
}

// GollmOption configures a GollmBackend.
type GollmOption func(*gollmConfig)

type gollmConfig struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	extraOpts   []gollm.ConfigOption
}

// WithAPIKey sets the API key for the backend.
func WithAPIKey(key string) GollmOption {
	return func(c *gollmConfig) {
		c.apiKey = key
	}
}

// WithModel sets the default model for the backend.
func WithModel(model string) GollmOption {
	return func(c *gollmConfig) {
		c.model = model
	}
}

// WithMaxTokens sets the default max tokens.
func WithMaxTokens(n int) GollmOption {
	return func(c *gollmConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the default temperature.
func WithTemperature(t float64) GollmOption {
	return func(c *gollmConfig) {
		c.temperature = t
	}
}

// WithGollmOptions adds extra gollm configuration options.
func WithGollmOptions(opts ...gollm.ConfigOption) GollmOption {
	return func(c *gollmConfig) {
		c.extraOpts = append(c.extraOpts, opts...)
	}
}

// NewGollmBackend creates a GollmBackend for the given provider. If apiKey
// is empty, gollm attempts to read it from environment variables.
func NewGollmBackend(provider string, apiKey string, opts ...GollmOption) (*GollmBackend, error) {
	cfg := &gollmConfig{
		apiKey:      apiKey,
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	model := cfg.model
	if model == "" {
		if infos := ListModels(provider); len(infos) > 0 {
			model = infos[0].ID
		} else {
			model = "gpt-5.2-mini"
		}
	}

	gollmOpts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetModel(model),
		gollm.SetMaxTokens(cfg.maxTokens),
		gollm.SetTemperature(cfg.temperature),
		gollm.SetMaxRetries(0), // retrying is the client middleware's job
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}

	if cfg.apiKey != "" {
		gollmOpts = append(gollmOpts, gollm.SetAPIKey(cfg.apiKey))
	}

	gollmOpts = append(gollmOpts, cfg.extraOpts...)

	llm, err := gollm.NewLLM(gollmOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gollm LLM for provider %s: %w", provider, err)
	}

	return &GollmBackend{
		provider: provider,
		llm:      llm,
		model:    model,
	}, nil
}

// NewGollmBackendFromLLM wraps an existing gollm.LLM instance.
func NewGollmBackendFromLLM(provider string, llm gollm.LLM) *GollmBackend {
	return &GollmBackend{
		provider: provider,
		llm:      llm,
	}
}

// Name returns the provider identifier.
func (b *GollmBackend) Name() string {
	return b.provider
}

// ChatCompletion sends a blocking request and returns the completion.
func (b *GollmBackend) ChatCompletion(ctx context.Context, req Request) (*Completion, error) {
	prompt := b.translateRequest(req)
	b.applyRequestOptions(req)

	text, err := b.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, b.translateError(err)
	}

	return b.buildCompletion(req, text), nil
}

// translateRequest converts a Request into a gollm Prompt.
func (b *GollmBackend) translateRequest(req Request) *gollm.Prompt {
	var systemPrompt string
	var userParts []string

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			systemPrompt += msg.Content + "\n"
		case RoleUser:
			userParts = append(userParts, msg.Content)
		case RoleAssistant:
			// For multi-turn, include assistant context.
			if msg.Content != "" {
				userParts = append(userParts, "[Assistant]: "+msg.Content)
			}
		case RoleTool:
			// Tool-result messages carry serialized results as content.
			if msg.Content != "" {
				userParts = append(userParts, "[Tool Result]: "+msg.Content)
			}
		}
	}

	promptText := strings.Join(userParts, "\n")
	if promptText == "" {
		promptText = "Hello"
	}

	promptOpts := []gollm.PromptOption{}

	if systemPrompt != "" {
		promptOpts = append(promptOpts, gollm.WithSystemPrompt(strings.TrimSpace(systemPrompt), gollm.CacheTypeEphemeral))
	}

	if req.MaxTokens != nil {
		promptOpts = append(promptOpts, gollm.WithMaxLength(*req.MaxTokens))
	}

	if len(req.Tools) > 0 {
		tools := make([]gollm.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			tools = append(tools, gollm.Tool{
				Type: "function",
				Function: gollm.Function{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				},
			})
		}
		promptOpts = append(promptOpts, gollm.WithTools(tools))
		promptOpts = append(promptOpts, gollm.WithToolChoice("auto"))
	}

	return gollm.NewPrompt(promptText, promptOpts...)
}

// applyRequestOptions applies request-level parameters to the gollm LLM.
func (b *GollmBackend) applyRequestOptions(req Request) {
	if req.Model != "" {
		b.llm.SetOption("model", req.Model)
	}
	if req.Temperature != nil {
		b.llm.SetOption("temperature", *req.Temperature)
	}
	if req.MaxTokens != nil {
		b.llm.SetOption("max_tokens", *req.MaxTokens)
	}
}

// buildCompletion constructs a Completion from the generated text.
func (b *GollmBackend) buildCompletion(req Request, text string) *Completion {
	model := req.Model
	if model == "" {
		model = b.model
	}

	toolCalls := parseToolCalls(text)
	content := text
	if len(toolCalls) > 0 {
		content = stripToolCallJSON(text)
	}

	kind := CompletionText
	if len(toolCalls) > 0 {
		kind = CompletionStructured
	}

	return &Completion{
		ID:        "cmpl_" + uuid.New().String()[:8],
		Kind:      kind,
		Model:     model,
		Provider:  b.provider,
		Content:   content,
		ToolCalls: toolCalls,
		Usage: Usage{
			// gollm doesn't expose detailed usage; estimate from text length.
			InputTokens:  estimateTokens(req),
			OutputTokens: len(text) / 4,
			TotalTokens:  estimateTokens(req) + len(text)/4,
		},
	}
}

// parseToolCalls attempts to extract tool calls from the response text.
// gollm may return tool calls as JSON embedded in the response.
func parseToolCalls(text string) []ToolCall {
	start := strings.Index(text, `[{"name"`)
	if start == -1 {
		return nil
	}

	var rawCalls []struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal([]byte(text[start:]), &rawCalls); err != nil {
		return nil
	}

	calls := make([]ToolCall, 0, len(rawCalls))
	for _, rc := range rawCalls {
		calls = append(calls, ToolCall{
			ID:        "call_" + uuid.New().String()[:8],
			Name:      rc.Name,
			Arguments: rc.Arguments,
		})
	}
	return calls
}

// stripToolCallJSON removes the parsed tool call JSON from the text.
func stripToolCallJSON(text string) string {
	if idx := strings.Index(text, `[{"name"`); idx != -1 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

// translateError converts a gollm error into the llmkit error hierarchy.
func (b *GollmBackend) translateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()

	msgLower := strings.ToLower(msg)
	switch {
	case strings.Contains(msgLower, "401") || strings.Contains(msgLower, "unauthorized") || strings.Contains(msgLower, "invalid api key"):
		return &AuthenticationError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider, StatusCode: 401,
		}}
	case strings.Contains(msgLower, "403") || strings.Contains(msgLower, "forbidden"):
		return &AccessDeniedError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider, StatusCode: 403,
		}}
	case strings.Contains(msgLower, "404") || strings.Contains(msgLower, "not found"):
		return &NotFoundError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider, StatusCode: 404,
		}}
	case strings.Contains(msgLower, "429") || strings.Contains(msgLower, "rate limit"):
		return &RateLimitError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider, StatusCode: 429, Retryable: true,
		}}
	case strings.Contains(msgLower, "context length") || strings.Contains(msgLower, "too many tokens"):
		return &ContextLengthError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider, StatusCode: 413,
		}}
	case strings.Contains(msgLower, "500") || strings.Contains(msgLower, "internal server"):
		return &ServerError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider, StatusCode: 500, Retryable: true,
		}}
	case strings.Contains(msgLower, "timeout"):
		return &RequestTimeoutError{BackendError: BackendError{Message: msg, Cause: err}}
	case strings.Contains(msgLower, "content filter") || strings.Contains(msgLower, "safety"):
		return &ContentFilterError{ProviderError: ProviderError{
			BackendError: BackendError{Message: msg, Cause: err}, Provider: b.provider,
		}}
	default:
		return &ProviderError{
			BackendError: BackendError{Message: msg, Cause: err},
			Provider:     b.provider,
			Retryable:    true,
		}
	}
}

// estimateTokens provides a rough token count estimate from request messages.
func estimateTokens(req Request) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	if total == 0 {
		total = 10
	}
	return total
}
