package agent

import (
	"encoding/json"

	"github.com/mderrick/agentry/llmkit"
)

// Step is one parsed backend response as seen by an execution pattern.
// Content and ToolCalls mirror the completion; the remaining fields are
// populated by patterns that parse structure out of the text.
type Step struct {
	Content   string
	ToolCalls []llmkit.ToolCall

	Thought     string
	Action      string
	ActionInput json.RawMessage
	Observation string
	FinalAnswer string

	// Terminal reports that this step ends the turn.
	Terminal bool
}

// ExecutionPattern is the pluggable policy that drives the invocation loop:
// how a raw completion is parsed, when the loop terminates, what the final
// answer is, and how non-terminal steps re-enter the conversation.
type ExecutionPattern interface {
	// Parse turns a raw completion into a Step.
	Parse(c llmkit.Completion) (Step, error)

	// ShouldContinue reports whether the loop should run another round.
	ShouldContinue(s Step) bool

	// FinalAnswer extracts the turn's result from a terminal step.
	FinalAnswer(s Step) string

	// FormatIntermediate renders a non-terminal step for appending to the
	// message sequence as an assistant turn.
	FormatIntermediate(s Step) string
}

// ToolCallPattern is the default execution pattern: the turn is terminal as
// soon as the backend stops requesting tools, and the final answer is the
// response text.
type ToolCallPattern struct{}

func (ToolCallPattern) Parse(c llmkit.Completion) (Step, error) {
	return Step{
		Content:   c.Content,
		ToolCalls: c.ToolCalls,
		Terminal:  !c.HasToolCalls(),
	}, nil
}

func (ToolCallPattern) ShouldContinue(s Step) bool {
	return !s.Terminal
}

func (ToolCallPattern) FinalAnswer(s Step) string {
	return s.Content
}

func (ToolCallPattern) FormatIntermediate(s Step) string {
	return s.Content
}
