package prompt

import (
	"github.com/mderrick/agentry/llmkit"
)

// Manager assembles the message sequence for one turn: a system message
// pre-rendered at construction, prior history verbatim, then the rendered
// user input. It owns the default variable mapping; call-time variables
// override defaults for the user turn.
type Manager struct {
	system   llmkit.Message
	defaults map[string]string
}

// NewManager creates a Manager, rendering the system prompt template once
// against the default variables. An unresolved placeholder in the system
// template is a construction error.
func NewManager(systemPrompt string, defaults map[string]string) (*Manager, error) {
	if defaults == nil {
		defaults = map[string]string{}
	}
	rendered, err := Substitute(systemPrompt, defaults)
	if err != nil {
		return nil, err
	}
	return &Manager{
		system:   llmkit.SystemMessage(rendered),
		defaults: defaults,
	}, nil
}

// System returns the pre-rendered system message.
func (m *Manager) System() llmkit.Message {
	return m.system
}

// Messages builds the full sequence for one turn. History is included
// verbatim between the system prefix and the user turn. The user input is
// rendered against the defaults merged with vars, vars winning.
func (m *Manager) Messages(userInput string, history []llmkit.Message, vars map[string]string) ([]llmkit.Message, error) {
	merged := make(map[string]string, len(m.defaults)+len(vars))
	for k, v := range m.defaults {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	rendered, err := Substitute(userInput, merged)
	if err != nil {
		return nil, err
	}

	messages := make([]llmkit.Message, 0, len(history)+2)
	messages = append(messages, m.system)
	messages = append(messages, history...)
	messages = append(messages, llmkit.UserMessage(rendered))
	return messages, nil
}
