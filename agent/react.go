package agent

import (
	"encoding/json"
	"strings"

	"github.com/mderrick/agentry/llmkit"
	"github.com/mderrick/agentry/prompt"
)

// FinalAnswerMarker is the sentinel a ReAct-style model emits to end a turn.
const FinalAnswerMarker = "[FINAL ANSWER]"

// FormatThought renders a reasoning step.
func FormatThought(thought string) string {
	return "Thought: " + thought
}

// FormatAction renders an action step with its input parameters.
func FormatAction(action string, input json.RawMessage) string {
	return "Action: " + action + "\nAction Input: " + string(input)
}

// FormatObservation renders the result of an action.
func FormatObservation(observation string) string {
	return "Observation: " + observation
}

// FormatFinalAnswer renders the final answer with its marker.
func FormatFinalAnswer(answer string) string {
	return FinalAnswerMarker + " " + answer
}

// FormatStep renders a full structured step. Empty fields are omitted; a
// terminal step ends with its final answer.
func FormatStep(s Step) string {
	var parts []string
	if s.Thought != "" {
		parts = append(parts, FormatThought(s.Thought))
	}
	if s.Action != "" {
		parts = append(parts, FormatAction(s.Action, s.ActionInput))
	}
	if s.Observation != "" {
		parts = append(parts, FormatObservation(s.Observation))
	}
	if s.Terminal && s.FinalAnswer != "" {
		parts = append(parts, FormatFinalAnswer(s.FinalAnswer))
	}
	return strings.Join(parts, "\n")
}

// NewReActFormatter returns the predefined prompt template for ReAct agents:
// reason step by step, act through tools, observe, and finish with the
// final-answer marker.
func NewReActFormatter() *prompt.Formatter {
	return prompt.NewFormatter(
		prompt.WithRole("You are an AI assistant that carefully approaches tasks step-by-step:\n"+
			"1. First THINK about what needs to be done\n"+
			"2. Then decide on an ACTION to take\n"+
			"3. Execute the action and observe the OBSERVATION\n"+
			"4. Repeat steps 1-3 until the task is complete\n"+
			"5. Finally, provide your "+FinalAnswerMarker),
		prompt.WithTask("Break down the user's request into a series of steps. For each step:\n"+
			"- Think about what information you need\n"+
			"- Choose an appropriate action to take\n"+
			"- Use the observation to plan your next step\n"+
			"Continue until you can provide a complete answer."),
		prompt.WithGuide("- Always start with a Thought about what you need to do\n"+
			"- Format your steps as:\n"+
			"  Thought: your reasoning\n"+
			"  Action: tool_name\n"+
			"  Action Input: {\"param\": \"value\"}\n"+
			"  Observation: tool output\n"+
			"- Use "+FinalAnswerMarker+" when you have the complete solution"),
		prompt.WithExamples(prompt.Example{
			Input: "What's the weather in New York?",
			Output: "Thought: I need to check the current weather in New York\n" +
				"Action: get_weather\n" +
				"Action Input: {\"location\": \"New York\"}\n" +
				"Observation: 72F, Partly cloudy\n" +
				"Thought: I have the weather information now\n" +
				FinalAnswerMarker + " The current weather in New York is 72F and partly cloudy.",
		}),
	)
}

// ReActPattern terminates the loop on the final-answer marker instead of the
// absence of tool calls. Non-terminal responses are parsed into
// thought/action/observation structure and re-rendered for the next round.
type ReActPattern struct{}

func (ReActPattern) Parse(c llmkit.Completion) (Step, error) {
	step := Step{
		Content:   c.Content,
		ToolCalls: c.ToolCalls,
	}

	if idx := strings.Index(c.Content, FinalAnswerMarker); idx != -1 {
		step.Terminal = true
		step.FinalAnswer = strings.TrimSpace(strings.ReplaceAll(c.Content, FinalAnswerMarker, ""))
	}

	parseReActFields(c.Content, &step)
	return step, nil
}

func (ReActPattern) ShouldContinue(s Step) bool {
	return !s.Terminal
}

func (ReActPattern) FinalAnswer(s Step) string {
	return s.FinalAnswer
}

func (ReActPattern) FormatIntermediate(s Step) string {
	if out := FormatStep(s); out != "" {
		return out
	}
	return s.Content
}

// parseReActFields fills the structured step fields from prefixed lines.
// Lines without a recognized prefix continue the preceding field.
func parseReActFields(text string, step *Step) {
	var current *string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Thought:"):
			step.Thought = strings.TrimSpace(strings.TrimPrefix(trimmed, "Thought:"))
			current = &step.Thought
		case strings.HasPrefix(trimmed, "Action Input:"):
			input := strings.TrimSpace(strings.TrimPrefix(trimmed, "Action Input:"))
			step.ActionInput = json.RawMessage(input)
			current = nil
		case strings.HasPrefix(trimmed, "Action:"):
			step.Action = strings.TrimSpace(strings.TrimPrefix(trimmed, "Action:"))
			current = &step.Action
		case strings.HasPrefix(trimmed, "Observation:"):
			step.Observation = strings.TrimSpace(strings.TrimPrefix(trimmed, "Observation:"))
			current = &step.Observation
		case current != nil && trimmed != "":
			*current += "\n" + trimmed
		}
	}
}

// NewReAct creates an Agent driven by the ReAct execution pattern in react
// mode. Further options apply on top.
func NewReAct(llm Completer, systemPrompt string, opts ...Option) (*Agent, error) {
	cfg := DefaultConfig()
	cfg.Mode = ModeReact
	base := []Option{
		WithConfig(cfg),
		WithPattern(ReActPattern{}),
	}
	return New(llm, systemPrompt, append(base, opts...)...)
}
