package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mderrick/agentry/llmkit"
	"github.com/mderrick/agentry/prompt"
)

// Completer issues one chat-completion call. Both *llmkit.Client and any
// llmkit.Backend satisfy it.
type Completer interface {
	ChatCompletion(ctx context.Context, req llmkit.Request) (*llmkit.Completion, error)
}

// ToolResult is the outcome of one tool-call request within a resolution
// round. A request that failed, or named an unknown tool, yields a result
// with IsError set rather than aborting the turn.
type ToolResult struct {
	ToolCallID string      `json:"tool_call_id,omitempty"`
	Name       string      `json:"name"`
	Content    interface{} `json:"content"`
	IsError    bool        `json:"is_error,omitempty"`

	// Err carries the underlying failure for programmatic inspection; it
	// is not serialized into the conversation.
	Err error `json:"-"`
}

// Agent orchestrates one conversation turn at a time: prompt assembly,
// backend invocation, tool-call resolution, bounded history update, and
// interaction logging. Each Agent owns its Store exclusively; a single
// instance must not process two turns concurrently.
type Agent struct {
	id       string
	llm      Completer
	prompts  *prompt.Manager
	memory   *MemoryManager
	cache    *CacheManager
	sink     Sink
	registry *Registry
	pattern  ExecutionPattern
	config   Config
}

// Option configures an Agent.
type Option func(*agentSetup)

type agentSetup struct {
	store     Store
	sink      Sink
	registry  *Registry
	pattern   ExecutionPattern
	config    Config
	variables map[string]string
}

// WithTools registers the given tools on the agent.
func WithTools(tools ...Tool) Option {
	return func(s *agentSetup) {
		for _, t := range tools {
			s.registry.Register(t)
		}
	}
}

// WithStore substitutes the backing store.
func WithStore(store Store) Option {
	return func(s *agentSetup) { s.store = store }
}

// WithSink substitutes the interaction log sink.
func WithSink(sink Sink) Option {
	return func(s *agentSetup) { s.sink = sink }
}

// WithPattern substitutes the execution pattern driving the loop.
func WithPattern(p ExecutionPattern) Option {
	return func(s *agentSetup) { s.pattern = p }
}

// WithConfig substitutes the agent configuration.
func WithConfig(cfg Config) Option {
	return func(s *agentSetup) {
		s.config = cfg
	}
}

// WithVariables sets the default variable mapping for prompt rendering.
func WithVariables(vars map[string]string) Option {
	return func(s *agentSetup) { s.variables = vars }
}

// New creates an Agent over the given backend and system prompt.
func New(llm Completer, systemPrompt string, opts ...Option) (*Agent, error) {
	if llm == nil {
		return nil, &ConfigurationError{Message: "llm backend is required"}
	}

	setup := &agentSetup{
		registry: NewRegistry(),
		pattern:  ToolCallPattern{},
		config:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(setup)
	}
	if err := setup.config.Validate(); err != nil {
		return nil, err
	}
	if setup.store == nil {
		setup.store = NewMemoryStore()
	}
	if setup.sink == nil {
		setup.sink = NewMemorySink()
	}

	prompts, err := prompt.NewManager(systemPrompt, setup.variables)
	if err != nil {
		return nil, err
	}

	return &Agent{
		id:       uuid.New().String(),
		llm:      llm,
		prompts:  prompts,
		memory:   NewMemoryManager(setup.store, setup.config.MaxHistory),
		cache:    NewCacheManager(setup.store),
		sink:     setup.sink,
		registry: setup.registry,
		pattern:  setup.pattern,
		config:   setup.config,
	}, nil
}

// ID returns the agent identifier.
func (a *Agent) ID() string { return a.id }

// Memory returns the agent's history manager.
func (a *Agent) Memory() *MemoryManager { return a.memory }

// Cache returns the agent's cache manager.
func (a *Agent) Cache() *CacheManager { return a.cache }

// Registry returns the agent's tool registry.
func (a *Agent) Registry() *Registry { return a.registry }

// Logs returns all recorded interactions when the sink is a MemorySink,
// otherwise nil.
func (a *Agent) Logs() []Entry {
	if mem, ok := a.sink.(*MemorySink); ok {
		return mem.Entries()
	}
	return nil
}

// ClearLogs discards recorded interactions when the sink is a MemorySink.
func (a *Agent) ClearLogs() {
	if mem, ok := a.sink.(*MemorySink); ok {
		mem.Clear()
	}
}

// Process runs one full turn: prompt assembly, backend invocation, tool
// resolution until the execution pattern declares the response terminal,
// then history update and log emission. The final content is returned.
//
// History is committed only after a terminal response; a failed turn leaves
// history and logs untouched. Backend failures are not retried here, they
// propagate to the caller.
func (a *Agent) Process(ctx context.Context, userInput, model string) (string, error) {
	return a.ProcessWithVariables(ctx, userInput, model, nil)
}

// ProcessWithVariables is Process with call-time prompt variables overriding
// the agent's defaults for the user turn.
func (a *Agent) ProcessWithVariables(ctx context.Context, userInput, model string, vars map[string]string) (string, error) {
	messages, err := a.prompts.Messages(userInput, a.memory.History(0), vars)
	if err != nil {
		return "", err
	}

	defs := a.registry.Definitions()
	rounds := 0

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		comp, err := a.llm.ChatCompletion(ctx, llmkit.Request{
			Model:    model,
			Messages: messages,
			Tools:    defs,
		})
		if err != nil {
			return "", err
		}

		step, err := a.pattern.Parse(*comp)
		if err != nil {
			return "", err
		}

		if !a.pattern.ShouldContinue(step) {
			final := a.pattern.FinalAnswer(step)
			a.commit(userInput, final, model)
			return final, nil
		}

		rounds++
		if a.config.MaxToolRounds > 0 && rounds > a.config.MaxToolRounds {
			return "", ErrToolRoundsExceeded
		}

		if len(step.ToolCalls) > 0 {
			results := a.resolveToolCalls(ctx, step.ToolCalls)
			messages = append(messages, llmkit.Message{
				Role:      llmkit.RoleAssistant,
				Content:   step.Content,
				ToolCalls: step.ToolCalls,
			})
			messages = append(messages, llmkit.ToolMessage(serializeResults(results)))
		} else {
			// Non-terminal text-only step (sentinel-style patterns):
			// re-enter the conversation as an assistant turn.
			messages = append(messages, llmkit.AssistantMessage(a.pattern.FormatIntermediate(step)))
		}
	}
}

// resolveToolCalls executes the requested calls sequentially, in request
// order. Result order equals request order. An unknown tool or a failing
// execution yields a synthetic error result for that request; it never
// aborts the round.
func (a *Agent) resolveToolCalls(ctx context.Context, calls []llmkit.ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))
	for i, call := range calls {
		results[i] = a.executeToolCall(ctx, call)
	}
	return results
}

func (a *Agent) executeToolCall(ctx context.Context, call llmkit.ToolCall) ToolResult {
	tool, ok := a.registry.Get(call.Name)
	if !ok {
		err := &ToolNotFoundError{Name: call.Name}
		return ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    err.Error(),
			IsError:    true,
			Err:        err,
		}
	}

	out, err := tool.Run(ctx, call.Arguments)
	if err != nil {
		return ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    fmt.Sprintf("tool error (%s): %v", call.Name, err),
			IsError:    true,
			Err:        err,
		}
	}

	if s, ok := out.(string); ok {
		out = TruncateOutput(s, a.config.ToolOutputLimit, TruncateTail)
	}
	return ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    out,
	}
}

// serializeResults folds one resolution round's results into the content of
// a single tool-role message.
func serializeResults(results []ToolResult) string {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Sprintf("%v", results)
	}
	return string(raw)
}

// commit records the completed turn: the original input and the final
// response go into bounded history, and one entry goes to the log sink.
func (a *Agent) commit(userInput, response, model string) {
	a.memory.Add(llmkit.UserMessage(userInput))
	a.memory.Add(llmkit.AssistantMessage(response))
	a.sink.Record(Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Model:     model,
		UserInput: userInput,
		Response:  response,
	})
}
