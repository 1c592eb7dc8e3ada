package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/mderrick/agentry/llmkit"
)

func TestReActParseFields(t *testing.T) {
	text := "Thought: I need the weather\n" +
		"Action: get_weather\n" +
		"Action Input: {\"location\": \"New York\"}\n" +
		"Observation: 72F, Partly cloudy"
	step, err := ReActPattern{}.Parse(*llmkit.TextCompletion(text))
	if err != nil {
		t.Fatal(err)
	}

	if step.Terminal {
		t.Error("step without the marker must not be terminal")
	}
	if step.Thought != "I need the weather" {
		t.Errorf("got thought %q", step.Thought)
	}
	if step.Action != "get_weather" {
		t.Errorf("got action %q", step.Action)
	}
	if string(step.ActionInput) != `{"location": "New York"}` {
		t.Errorf("got action input %q", step.ActionInput)
	}
	if step.Observation != "72F, Partly cloudy" {
		t.Errorf("got observation %q", step.Observation)
	}
}

func TestReActParseContinuationLines(t *testing.T) {
	text := "Thought: first line\n" +
		"second line\n" +
		"Action: lookup"
	step, _ := ReActPattern{}.Parse(*llmkit.TextCompletion(text))

	if step.Thought != "first line\nsecond line" {
		t.Errorf("got thought %q", step.Thought)
	}
	if step.Action != "lookup" {
		t.Errorf("got action %q", step.Action)
	}
}

func TestReActParseFinalAnswer(t *testing.T) {
	text := "Thought: I have everything\n" +
		FinalAnswerMarker + " The weather is 72F and partly cloudy."
	step, _ := ReActPattern{}.Parse(*llmkit.TextCompletion(text))

	if !step.Terminal {
		t.Fatal("marker must make the step terminal")
	}
	final := (ReActPattern{}).FinalAnswer(step)
	if strings.Contains(final, FinalAnswerMarker) {
		t.Errorf("marker must be stripped: %q", final)
	}
	if !strings.Contains(final, "72F and partly cloudy") {
		t.Errorf("got %q", final)
	}
}

func TestReActFormatIntermediate(t *testing.T) {
	text := "Thought: check the weather\n" +
		"Action: get_weather\n" +
		"Action Input: {\"location\": \"Paris\"}"
	step, _ := ReActPattern{}.Parse(*llmkit.TextCompletion(text))

	out := (ReActPattern{}).FormatIntermediate(step)
	if !strings.Contains(out, "Thought: check the weather") ||
		!strings.Contains(out, "Action: get_weather") ||
		!strings.Contains(out, `Action Input: {"location": "Paris"}`) {
		t.Errorf("got %q", out)
	}

	// Unstructured text passes through untouched.
	plain, _ := ReActPattern{}.Parse(*llmkit.TextCompletion("just musing"))
	if got := (ReActPattern{}).FormatIntermediate(plain); got != "just musing" {
		t.Errorf("got %q", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatThought("reasoning"); got != "Thought: reasoning" {
		t.Errorf("got %q", got)
	}
	if got := FormatAction("search", []byte(`{"q":"go"}`)); got != "Action: search\nAction Input: {\"q\":\"go\"}" {
		t.Errorf("got %q", got)
	}
	if got := FormatObservation("found it"); got != "Observation: found it" {
		t.Errorf("got %q", got)
	}
	if got := FormatFinalAnswer("42"); got != FinalAnswerMarker+" 42" {
		t.Errorf("got %q", got)
	}

	step := Step{
		Thought:     "look it up",
		Action:      "search",
		ActionInput: []byte(`{"q":"go"}`),
		Observation: "found",
	}
	want := "Thought: look it up\nAction: search\nAction Input: {\"q\":\"go\"}\nObservation: found"
	if got := FormatStep(step); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewReActLoop(t *testing.T) {
	backend := &scriptedBackend{script: []*llmkit.Completion{
		llmkit.TextCompletion("Thought: I should reason first\nAction: think"),
		llmkit.TextCompletion("Thought: done\n" + FinalAnswerMarker + " the answer is 42"),
	}}
	sys, err := NewReActFormatter().FormatPrompt("Reason step by step.", nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewReAct(backend, sys)
	if err != nil {
		t.Fatal(err)
	}

	got, err := a.Process(context.Background(), "what is the answer?", "claude-sonnet-4-5")
	if err != nil {
		t.Fatal(err)
	}
	if got != "the answer is 42" {
		t.Errorf("got %q", got)
	}
	if len(backend.requests) != 2 {
		t.Fatalf("got %d backend calls, want 2", len(backend.requests))
	}

	// The intermediate step re-enters the conversation as an assistant turn.
	msgs := backend.requests[1].Messages
	last := msgs[len(msgs)-1]
	if last.Role != llmkit.RoleAssistant || !strings.Contains(last.Content, "Thought: I should reason first") {
		t.Errorf("got %+v", last)
	}
}
