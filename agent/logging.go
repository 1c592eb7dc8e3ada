package agent

import (
	"sync"
	"time"
)

// Entry records one completed interaction.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model"`
	UserInput string    `json:"user_input"`
	Response  string    `json:"agent_response"`
}

// Sink receives interaction log entries. An Agent records one entry per
// completed turn; a durable logging backend attaches here.
type Sink interface {
	Record(e Entry)
}

// MemorySink is a Sink that retains entries in memory.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record appends an entry.
func (s *MemorySink) Record(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Entries returns a copy of all recorded entries in record order.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear discards all recorded entries.
func (s *MemorySink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// ChannelSink delivers entries to the host application via a buffered
// channel. If the channel is full the entry is dropped so recording never
// blocks the agent's turn loop.
type ChannelSink struct {
	ch     chan Entry
	closed bool
	mu     sync.Mutex
}

// NewChannelSink creates a ChannelSink with the given buffer size.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &ChannelSink{
		ch: make(chan Entry, bufferSize),
	}
}

// Record sends an entry to the channel. If the sink is closed, the entry is
// silently dropped.
func (s *ChannelSink) Record(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- e:
	default:
		// Channel full; drop the entry rather than block.
	}
}

// Entries returns the read-only entry channel.
func (s *ChannelSink) Entries() <-chan Entry {
	return s.ch
}

// Close closes the channel. Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
