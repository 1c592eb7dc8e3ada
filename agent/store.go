package agent

import (
	"github.com/mderrick/agentry/llmkit"
)

// Store is the storage capability behind MemoryManager and CacheManager: an
// ordered conversation history plus a key/value cache. A Store belongs to
// exactly one Agent and is mutated only from that agent's turn-processing
// path, so implementations are not required to be safe for concurrent use.
type Store interface {
	// AddHistory appends a message to the history. A message without both
	// a role and content is silently dropped.
	AddHistory(msg llmkit.Message)

	// History returns the most recent limit messages in original order.
	// A non-positive limit returns the whole history.
	History(limit int) []llmkit.Message

	// HistoryLen returns the current history length.
	HistoryLen() int

	// EvictOldest drops the oldest history entry, if any.
	EvictOldest()

	// SetCache stores a value under key, overwriting any previous value.
	SetCache(key string, value interface{})

	// GetCache looks up a key. The second result reports presence; a miss
	// never mutates the cache.
	GetCache(key string) (interface{}, bool)

	// CacheAll returns a copy of the whole cache.
	CacheAll() map[string]interface{}

	// Clear resets history and/or cache per the explicit flags.
	Clear(history, cache bool)
}

// MemoryStore is the in-memory Store implementation. It lives exactly as
// long as the Agent that owns it.
type MemoryStore struct {
	history []llmkit.Message
	cache   map[string]interface{}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: make(map[string]interface{}),
	}
}

func (s *MemoryStore) AddHistory(msg llmkit.Message) {
	if msg.Role == "" || msg.Content == "" {
		return
	}
	s.history = append(s.history, msg)
}

func (s *MemoryStore) History(limit int) []llmkit.Message {
	start := 0
	if limit > 0 && len(s.history) > limit {
		start = len(s.history) - limit
	}
	out := make([]llmkit.Message, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

func (s *MemoryStore) HistoryLen() int {
	return len(s.history)
}

func (s *MemoryStore) EvictOldest() {
	if len(s.history) == 0 {
		return
	}
	s.history = s.history[1:]
}

func (s *MemoryStore) SetCache(key string, value interface{}) {
	s.cache[key] = value
}

func (s *MemoryStore) GetCache(key string) (interface{}, bool) {
	v, ok := s.cache[key]
	return v, ok
}

func (s *MemoryStore) CacheAll() map[string]interface{} {
	out := make(map[string]interface{}, len(s.cache))
	for k, v := range s.cache {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Clear(history, cache bool) {
	if history {
		s.history = nil
	}
	if cache {
		s.cache = make(map[string]interface{})
	}
}
