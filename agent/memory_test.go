package agent

import (
	"fmt"
	"testing"

	"github.com/mderrick/agentry/llmkit"
)

func TestMemoryManagerBound(t *testing.T) {
	m := NewMemoryManager(NewMemoryStore(), 3)
	for i := 0; i < 10; i++ {
		m.Add(llmkit.UserMessage(fmt.Sprintf("msg-%d", i)))
	}

	h := m.History(0)
	if len(h) != 3 {
		t.Fatalf("got %d messages, want 3", len(h))
	}
	for i, want := range []string{"msg-7", "msg-8", "msg-9"} {
		if h[i].Content != want {
			t.Errorf("h[%d] = %q, want %q", i, h[i].Content, want)
		}
	}
}

func TestMemoryManagerDefaultBound(t *testing.T) {
	m := NewMemoryManager(NewMemoryStore(), 0)
	if m.MaxHistory() != DefaultMaxHistory {
		t.Errorf("got %d, want %d", m.MaxHistory(), DefaultMaxHistory)
	}
}

func TestMemoryManagerDropsMalformed(t *testing.T) {
	m := NewMemoryManager(NewMemoryStore(), 5)
	m.Add(llmkit.Message{Role: llmkit.RoleUser})
	m.Add(llmkit.UserMessage("kept"))

	if got := len(m.History(0)); got != 1 {
		t.Errorf("got %d messages, want 1", got)
	}
}

func TestMemoryManagerClear(t *testing.T) {
	store := NewMemoryStore()
	store.SetCache("k", "v")
	m := NewMemoryManager(store, 5)
	m.Add(llmkit.UserMessage("hello"))

	m.Clear()
	if len(m.History(0)) != 0 {
		t.Errorf("history not cleared")
	}
	if _, ok := store.GetCache("k"); !ok {
		t.Errorf("clearing memory must not touch the cache")
	}
}
