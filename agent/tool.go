package agent

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/mderrick/agentry/llmkit"
)

// Tool is a named capability the model may invoke. A tool declares its name
// (matched case-insensitively at dispatch), a description, and a parameter
// schema mapping each parameter name to its JSON Schema fragment.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{}

	// Run executes the tool with the call's argument mapping, serialized
	// as a JSON object.
	Run(ctx context.Context, args json.RawMessage) (interface{}, error)
}

// FuncTool adapts a plain function into a Tool.
type FuncTool struct {
	name        string
	description string
	parameters  map[string]interface{}
	fn          func(ctx context.Context, args json.RawMessage) (interface{}, error)
}

// NewTool creates a Tool backed by fn. parameters maps each parameter name
// to its JSON Schema fragment; SchemaFor derives it from a struct type.
func NewTool(name, description string, parameters map[string]interface{}, fn func(ctx context.Context, args json.RawMessage) (interface{}, error)) *FuncTool {
	return &FuncTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

func (t *FuncTool) Name() string                       { return t.name }
func (t *FuncTool) Description() string                { return t.description }
func (t *FuncTool) Parameters() map[string]interface{} { return t.parameters }

func (t *FuncTool) Run(ctx context.Context, args json.RawMessage) (interface{}, error) {
	return t.fn(ctx, args)
}

// FunctionDecl renders a tool's declared schema into the provider
// function-calling format: an object schema whose properties are the
// declared parameters, all of them required.
func FunctionDecl(t Tool) llmkit.ToolDefinition {
	params := t.Parameters()
	if params == nil {
		params = map[string]interface{}{}
	}
	required := make([]string, 0, len(params))
	for name := range params {
		required = append(required, name)
	}
	sort.Strings(required)

	return llmkit.ToolDefinition{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": params,
			"required":   required,
		},
	}
}

// Registry maps declared tool names to their executors. Lookup is
// case-insensitive against the declared name; the map is built explicitly at
// registration, never derived by reflection.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates a Registry holding the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{
		tools: make(map[string]Tool),
	}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a tool, keyed by its lower-cased declared name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(t.Name())
	if _, exists := r.tools[key]; !exists {
		r.order = append(r.order, key)
	}
	r.tools[key] = t
}

// Get returns the tool registered under name, matched case-insensitively.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[strings.ToLower(name)]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Definitions returns all tool declarations in registration order, for
// sending to the backend.
func (r *Registry) Definitions() []llmkit.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llmkit.ToolDefinition, 0, len(r.order))
	for _, key := range r.order {
		defs = append(defs, FunctionDecl(r.tools[key]))
	}
	return defs
}
