// Package engine implements the structural edits on a tree state.
//
// Every operation is pure: it takes the current state plus parameters and
// returns a new state, or nil when the edit is a no-op (unknown id, boundary
// violation). Nothing here ever mutates the input or returns an error; the
// caller distinguishes "applied" (non-nil) from "no-op" (nil).
//
// Operations work on the authoritative flat node list and merge by id, so
// dangling parent references cannot arise. Derived fields (Roots, Flat) are
// rebuilt before the new state is returned, and a selection that no longer
// resolves is cleared.
package engine

import (
	"time"

	"treeline-cli/internal/model"
	"treeline-cli/internal/outline"
	"treeline-cli/internal/rank"
)

func clone(st *model.TreeState) *model.TreeState {
	out := &model.TreeState{
		Nodes:        append([]model.Node(nil), st.Nodes...),
		SelectedID:   st.SelectedID,
		InlineCreate: st.InlineCreate,
		Expanded:     make(map[string]bool, len(st.Expanded)),
	}
	for id, v := range st.Expanded {
		if v {
			out.Expanded[id] = true
		}
	}
	return out
}

// rebuild re-derives Roots/Flat and enforces the selection invariant.
func rebuild(st *model.TreeState) *model.TreeState {
	st.Roots, st.Flat = outline.Build(st.Nodes)
	if st.SelectedID != "" && st.FindTreeNode(st.SelectedID) == nil {
		st.SelectedID = ""
	}
	return st
}

// siblingGroup returns the ordered sibling group for a parent reference,
// using the derived tree of st (roots for a nil parent).
func siblingGroup(st *model.TreeState, parentID *string) []*model.TreeNode {
	pk := model.ParentKey(parentID)
	if pk == "" {
		return st.Roots
	}
	if p := st.FindTreeNode(pk); p != nil {
		return p.Children
	}
	return nil
}

func indexIn(group []*model.TreeNode, id string) int {
	for i, tn := range group {
		if tn.ID == id {
			return i
		}
	}
	return -1
}

// renumberGroup assigns (index+1)*Step ranks to orderedIDs. Only nodes whose
// rank actually changes get a fresh UpdatedAt.
func renumberGroup(st *model.TreeState, orderedIDs []string, now time.Time) {
	for i, id := range orderedIDs {
		idx := st.FindNode(id)
		if idx < 0 {
			continue
		}
		want := rank.ForIndex(i)
		if st.Nodes[idx].Rank == want {
			continue
		}
		st.Nodes[idx].Rank = want
		st.Nodes[idx].UpdatedAt = now
	}
}

func groupIDs(group []*model.TreeNode) []string {
	out := make([]string, 0, len(group))
	for _, tn := range group {
		out = append(out, tn.ID)
	}
	return out
}

func nowUTC() time.Time { return time.Now().UTC() }
