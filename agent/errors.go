package agent

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid agent mode or a missing required
// constructor argument.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "agent: " + e.Message
}

// ToolNotFoundError reports a tool-call request naming a tool that is not in
// the agent's registry. The loop records it on the synthetic result for that
// request rather than aborting the turn.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("agent: no tool registered for %q", e.Name)
}

// ErrToolRoundsExceeded is returned when the tool-resolution cycle of one
// turn exceeds the configured maximum number of rounds.
var ErrToolRoundsExceeded = errors.New("agent: tool resolution rounds exceeded")
