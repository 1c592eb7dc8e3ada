package agent

import (
	"github.com/mderrick/agentry/llmkit"
)

// DefaultMaxHistory is the default bound on conversation history length.
const DefaultMaxHistory = 20

// MemoryManager is the bounded-history facade over a Store. When an Add
// pushes the history past the configured maximum, the oldest entry is
// evicted, once per Add. The system prompt is never part of the history; it
// lives in the prompt manager's fixed prefix.
type MemoryManager struct {
	store      Store
	maxHistory int
}

// NewMemoryManager creates a MemoryManager over store. A non-positive
// maxHistory selects DefaultMaxHistory.
func NewMemoryManager(store Store, maxHistory int) *MemoryManager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &MemoryManager{store: store, maxHistory: maxHistory}
}

// Add appends a message to the history and evicts the oldest entry if the
// bound is exceeded. Malformed messages are dropped by the store, in which
// case the history is unchanged.
func (m *MemoryManager) Add(msg llmkit.Message) {
	m.store.AddHistory(msg)
	if m.store.HistoryLen() > m.maxHistory {
		m.store.EvictOldest()
	}
}

// History returns the most recent limit messages in original order. A
// non-positive limit returns everything retained.
func (m *MemoryManager) History(limit int) []llmkit.Message {
	return m.store.History(limit)
}

// Clear resets the history, leaving any cache on the shared store intact.
func (m *MemoryManager) Clear() {
	m.store.Clear(true, false)
}

// MaxHistory returns the configured history bound.
func (m *MemoryManager) MaxHistory() int {
	return m.maxHistory
}
