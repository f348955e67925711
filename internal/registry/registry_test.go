package registry

import (
	"testing"

	"treeline-cli/internal/model"
	"treeline-cli/internal/state"
)

func TestRegisterLookupUnregister(t *testing.T) {
	r := New()
	s := state.New([]model.Node{{ID: "1", Rank: 100}})
	r.Register("main", Handle{State: s.State, Actions: s})

	h, ok := r.Lookup("main")
	if !ok {
		t.Fatalf("Lookup(main) not found")
	}
	if got := h.State().Flat[0].ID; got != "1" {
		t.Fatalf("handle state root = %q, want 1", got)
	}

	if _, ok := r.Lookup("other"); ok {
		t.Fatalf("Lookup(other) should miss")
	}

	r.Unregister("main")
	if _, ok := r.Lookup("main"); ok {
		t.Fatalf("Lookup after Unregister should miss")
	}
}

func TestHandleActionsMutateLiveState(t *testing.T) {
	r := New()
	s := state.New([]model.Node{
		{ID: "1", Rank: 100},
		{ID: "2", Rank: 200},
	})
	r.Register("main", Handle{State: s.State, Actions: s})

	h, _ := r.Lookup("main")
	if !h.Actions.MoveDown("1") {
		t.Fatalf("MoveDown through the handle should apply")
	}
	if got := h.State().Flat[0].ID; got != "2" {
		t.Fatalf("root after move = %q, want 2", got)
	}
}

func TestIDsSorted(t *testing.T) {
	r := New()
	for _, id := range []string{"b", "a", "c"} {
		s := state.New(nil)
		r.Register(id, Handle{State: s.State, Actions: s})
	}
	ids := r.IDs()
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("IDs() = %v, want sorted [a b c]", ids)
	}
}
