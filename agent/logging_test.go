package agent

import (
	"testing"
	"time"
)

func TestMemorySinkRecordAndClear(t *testing.T) {
	s := NewMemorySink()
	s.Record(Entry{ID: "1", UserInput: "hi", Response: "hello"})
	s.Record(Entry{ID: "2", UserInput: "bye", Response: "goodbye"})

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != "1" || entries[1].ID != "2" {
		t.Errorf("record order not preserved: %+v", entries)
	}

	// The returned slice must be a copy.
	entries[0].ID = "mutated"
	if s.Entries()[0].ID != "1" {
		t.Errorf("Entries must return a detached copy")
	}

	s.Clear()
	if len(s.Entries()) != 0 {
		t.Errorf("entries not cleared")
	}
}

func TestChannelSinkDelivery(t *testing.T) {
	s := NewChannelSink(4)
	s.Record(Entry{ID: "a"})

	select {
	case e := <-s.Entries():
		if e.ID != "a" {
			t.Errorf("got %q", e.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("entry not delivered")
	}
}

func TestChannelSinkDropsWhenFull(t *testing.T) {
	s := NewChannelSink(1)
	s.Record(Entry{ID: "kept"})
	s.Record(Entry{ID: "dropped"}) // buffer full, must not block

	if e := <-s.Entries(); e.ID != "kept" {
		t.Errorf("got %q", e.ID)
	}
	select {
	case e := <-s.Entries():
		t.Errorf("unexpected entry %q", e.ID)
	default:
	}
}

func TestChannelSinkClose(t *testing.T) {
	s := NewChannelSink(1)
	s.Close()
	s.Close() // idempotent
	s.Record(Entry{ID: "late"}) // dropped, must not panic

	if _, ok := <-s.Entries(); ok {
		t.Errorf("channel should be closed and drained")
	}
}
