package prompt

import (
	"errors"
	"testing"

	"github.com/mderrick/agentry/llmkit"
)

func TestManagerSystemPreRendered(t *testing.T) {
	m, err := NewManager("You help {team}", map[string]string{"team": "support"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sys := m.System()
	if sys.Role != llmkit.RoleSystem {
		t.Errorf("got role %q", sys.Role)
	}
	if sys.Content != "You help support" {
		t.Errorf("got %q", sys.Content)
	}
}

func TestManagerSystemMissingVariable(t *testing.T) {
	_, err := NewManager("You help {team}", nil)
	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
}

func TestManagerMessages(t *testing.T) {
	m, err := NewManager("Be helpful", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := []llmkit.Message{
		llmkit.UserMessage("first question"),
		llmkit.AssistantMessage("first answer"),
	}
	msgs, err := m.Messages("second question", history, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].Role != llmkit.RoleSystem {
		t.Errorf("first message must be the system prefix")
	}
	if msgs[1].Content != "first question" || msgs[2].Content != "first answer" {
		t.Errorf("history not included verbatim: %+v", msgs[1:3])
	}
	if msgs[3].Role != llmkit.RoleUser || msgs[3].Content != "second question" {
		t.Errorf("user turn wrong: %+v", msgs[3])
	}
}

func TestManagerMessagesNoHistory(t *testing.T) {
	m, _ := NewManager("Be helpful", nil)
	msgs, err := m.Messages("hi", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
}

func TestManagerVariableOverride(t *testing.T) {
	m, err := NewManager("Base", map[string]string{"city": "Oslo", "unit": "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs, err := m.Messages("weather in {city} in {unit}", nil, map[string]string{"city": "Bergen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := msgs[len(msgs)-1].Content
	if got != "weather in Bergen in C" {
		t.Errorf("got %q; call-time variables must override defaults", got)
	}
}

func TestManagerUserTurnMissingVariable(t *testing.T) {
	m, _ := NewManager("Base", nil)
	_, err := m.Messages("hello {name}", nil, nil)
	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
	if missing.Name != "name" {
		t.Errorf("error names %q", missing.Name)
	}
}
