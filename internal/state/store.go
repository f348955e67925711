// Package state holds one live tree instance and applies mutations to it
// atomically.
//
// The store is "a state value plus a replace function": every replacement
// rebuilds the derived tree and notifies subscribers. The hosting event loop
// delivers one action at a time, but the store is safe to share anyway.
package state

import (
	"sync"

	"treeline-cli/internal/engine"
	"treeline-cli/internal/model"
	"treeline-cli/internal/outline"
)

type Store struct {
	mu   sync.Mutex
	st   model.TreeState
	subs map[int]func()
	next int
}

// New creates a store seeded with a node snapshot.
func New(nodes []model.Node) *Store {
	s := &Store{subs: map[int]func(){}}
	s.st = model.TreeState{Nodes: nodes, Expanded: map[string]bool{}}
	s.st.Roots, s.st.Flat = outline.Build(s.st.Nodes)
	return s
}

// State returns the current state. The value shares node slices with the
// store; callers treat it as read-only (every mutation builds fresh slices).
func (s *Store) State() model.TreeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Subscribe registers fn to run after every state replacement. The returned
// function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) replace(st model.TreeState) {
	s.mu.Lock()
	s.st = st
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// apply runs an engine operation against the current state and replaces it
// when the operation applied. Reports whether it did.
func (s *Store) apply(op func(*model.TreeState) *model.TreeState) bool {
	s.mu.Lock()
	cur := s.st
	s.mu.Unlock()
	out := op(&cur)
	if out == nil {
		return false
	}
	s.replace(*out)
	return true
}

// SetNodes replaces the authoritative node list wholesale and rebuilds the
// derived tree. A selection that no longer resolves is cleared.
func (s *Store) SetNodes(nodes []model.Node) {
	s.mu.Lock()
	st := s.st
	s.mu.Unlock()

	st.Nodes = nodes
	st.Roots, st.Flat = outline.Build(nodes)
	if st.SelectedID != "" && st.FindTreeNode(st.SelectedID) == nil {
		st.SelectedID = ""
	}
	s.replace(st)
}

// Select sets the selection; blank clears it.
func (s *Store) Select(id string) {
	s.mu.Lock()
	st := s.st
	s.mu.Unlock()
	st.SelectedID = id
	s.replace(st)
}

// ToggleExpanded flips one node's expanded flag.
func (s *Store) ToggleExpanded(id string) {
	s.mu.Lock()
	st := s.st
	s.mu.Unlock()

	next := make(map[string]bool, len(st.Expanded))
	for k, v := range st.Expanded {
		if v {
			next[k] = true
		}
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	st.Expanded = next
	s.replace(st)
}

// SetExpanded replaces the expanded set wholesale.
func (s *Store) SetExpanded(ids []string) {
	s.mu.Lock()
	st := s.st
	s.mu.Unlock()

	next := make(map[string]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	st.Expanded = next
	s.replace(st)
}

// SetInlineCreate replaces the inline-create session (nil clears it).
func (s *Store) SetInlineCreate(sess *model.InlineCreateSession) {
	s.mu.Lock()
	st := s.st
	s.mu.Unlock()
	st.InlineCreate = sess
	s.replace(st)
}

// Engine wrappers. Each reports whether the mutation applied.

func (s *Store) Indent(id string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState { return engine.Indent(st, id) })
}

func (s *Store) Outdent(id string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState { return engine.Outdent(st, id) })
}

func (s *Store) MoveUp(id string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState { return engine.Move(st, id, engine.Up) })
}

func (s *Store) MoveDown(id string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState { return engine.Move(st, id, engine.Down) })
}

func (s *Store) Rename(id, title string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState { return engine.Rename(st, id, title) })
}

func (s *Store) Delete(id string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState { return engine.Delete(st, id) })
}

func (s *Store) BeginInlineCreate(tempID, sourceID, afterID string, parentID *string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState {
		return engine.BeginInlineCreate(st, tempID, sourceID, afterID, parentID)
	})
}

func (s *Store) AddInlineCreatePlaceholder(afterID string, node model.Node) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState {
		return engine.AddInlineCreatePlaceholder(st, afterID, node)
	})
}

func (s *Store) CancelInlineCreate(tempID string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState {
		return engine.CancelInlineCreate(st, tempID)
	})
}

func (s *Store) ConfirmInlineCreate(tempID, finalID string) bool {
	return s.apply(func(st *model.TreeState) *model.TreeState {
		return engine.ConfirmInlineCreate(st, tempID, finalID)
	})
}
