package agent

import (
	"encoding/json"
	"testing"

	"github.com/mderrick/agentry/llmkit"
)

func TestToolCallPatternTerminalWithoutCalls(t *testing.T) {
	step, err := ToolCallPattern{}.Parse(*llmkit.TextCompletion("all done"))
	if err != nil {
		t.Fatal(err)
	}
	if !step.Terminal {
		t.Error("text-only completion must be terminal")
	}
	if (ToolCallPattern{}).ShouldContinue(step) {
		t.Error("terminal step must stop the loop")
	}
	if got := (ToolCallPattern{}).FinalAnswer(step); got != "all done" {
		t.Errorf("got %q", got)
	}
}

func TestToolCallPatternContinuesWithCalls(t *testing.T) {
	comp := llmkit.StructuredCompletion("working on it", []llmkit.ToolCall{{
		ID:        "call_1",
		Name:      "search",
		Arguments: json.RawMessage(`{"q":"go"}`),
	}})
	step, err := ToolCallPattern{}.Parse(*comp)
	if err != nil {
		t.Fatal(err)
	}
	if step.Terminal {
		t.Error("completion with tool calls must not be terminal")
	}
	if !(ToolCallPattern{}).ShouldContinue(step) {
		t.Error("non-terminal step must continue the loop")
	}
	if len(step.ToolCalls) != 1 || step.ToolCalls[0].Name != "search" {
		t.Errorf("got %+v", step.ToolCalls)
	}
}
