package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestAppendAndListEvents(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".treeline")}
	ctx := context.Background()

	evs := []Event{
		{Type: "add", NodeID: "node-a", Payload: map[string]any{"title": "alpha"}},
		{Type: "indent", NodeID: "node-b"},
		{Type: "delete", NodeID: "node-a"},
	}
	for _, ev := range evs {
		if err := s.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent(%s): %v", ev.Type, err)
		}
	}

	got, err := s.ListEvents(ctx, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	// Newest first.
	if got[0].Type != "delete" || got[2].Type != "add" {
		t.Fatalf("order = [%s %s %s]", got[0].Type, got[1].Type, got[2].Type)
	}
	if got[2].Payload["title"] != "alpha" {
		t.Fatalf("payload = %v", got[2].Payload)
	}
	if got[0].At.IsZero() {
		t.Fatalf("timestamp should be set")
	}
}

func TestListEventsLimit(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".treeline")}
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.AppendEvent(ctx, Event{Type: "rename", NodeID: "node-a"}); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}
	got, err := s.ListEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].ID <= got[1].ID {
		t.Fatalf("ids should descend: %d, %d", got[0].ID, got[1].ID)
	}
}
