package engine

import (
	"treeline-cli/internal/model"
)

// Rename sets the node's title. No-op when the id is unknown.
func Rename(st *model.TreeState, id, title string) *model.TreeState {
	if st.FindNode(id) < 0 {
		return nil
	}
	out := clone(st)
	idx := out.FindNode(id)
	out.Nodes[idx].Title = title
	out.Nodes[idx].UpdatedAt = nowUTC()
	return rebuild(out)
}

// Delete removes the node and its entire subtree. The next selection falls
// back through: following sibling, preceding sibling, parent, none.
func Delete(st *model.TreeState, id string) *model.TreeState {
	tn := st.FindTreeNode(id)
	if tn == nil {
		return nil
	}

	removed := map[string]bool{}
	var mark func(t *model.TreeNode)
	mark = func(t *model.TreeNode) {
		removed[t.ID] = true
		for _, ch := range t.Children {
			mark(ch)
		}
	}
	mark(tn)

	group := siblingGroup(st, tn.ParentID)
	i := indexIn(group, id)
	nextSelected := ""
	switch {
	case i >= 0 && i+1 < len(group):
		nextSelected = group[i+1].ID
	case i > 0:
		nextSelected = group[i-1].ID
	default:
		nextSelected = model.ParentKey(tn.ParentID)
	}

	out := clone(st)
	kept := out.Nodes[:0]
	for _, n := range out.Nodes {
		if !removed[n.ID] {
			kept = append(kept, n)
		}
	}
	out.Nodes = kept
	for rid := range removed {
		delete(out.Expanded, rid)
	}
	if s := out.InlineCreate; s != nil {
		if removed[s.TempID] || removed[s.SourceID] || removed[s.AfterID] || removed[model.ParentKey(s.ParentID)] {
			out.InlineCreate = nil
		}
	}
	out.SelectedID = nextSelected
	return rebuild(out)
}
