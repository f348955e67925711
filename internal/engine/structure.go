package engine

import (
	"treeline-cli/internal/model"
	"treeline-cli/internal/rank"
)

// Direction selects the adjacent sibling for Move.
type Direction int

const (
	Up Direction = iota
	Down
)

// Indent makes the node the last child of its immediately preceding sibling.
// No-op when the node is first among its siblings or unknown.
func Indent(st *model.TreeState, id string) *model.TreeState {
	tn := st.FindTreeNode(id)
	if tn == nil {
		return nil
	}
	group := siblingGroup(st, tn.ParentID)
	i := indexIn(group, id)
	if i <= 0 {
		return nil
	}
	prev := group[i-1]

	newRank := rank.Initial()
	if len(prev.Children) > 0 {
		newRank = rank.After(prev.Children[len(prev.Children)-1].Rank)
	}

	out := clone(st)
	idx := out.FindNode(id)
	out.Nodes[idx].ParentID = model.ParentRef(prev.ID)
	out.Nodes[idx].Rank = newRank
	out.Nodes[idx].UpdatedAt = nowUTC()
	out.Expanded[prev.ID] = true
	out.SelectedID = id
	return rebuild(out)
}

// Outdent makes the node a sibling of its former parent, placed immediately
// after it. The whole destination sibling group is renumbered so the
// insertion point is unambiguous. No-op at root level.
func Outdent(st *model.TreeState, id string) *model.TreeState {
	tn := st.FindTreeNode(id)
	if tn == nil {
		return nil
	}
	parentKey := model.ParentKey(tn.ParentID)
	if parentKey == "" {
		return nil
	}
	parent := st.FindTreeNode(parentKey)
	if parent == nil {
		return nil
	}
	grandID := model.ParentKey(parent.ParentID)

	destGroup := siblingGroup(st, parent.ParentID)
	order := make([]string, 0, len(destGroup)+1)
	for _, sib := range destGroup {
		order = append(order, sib.ID)
		if sib.ID == parent.ID {
			order = append(order, id)
		}
	}

	now := nowUTC()
	out := clone(st)
	idx := out.FindNode(id)
	out.Nodes[idx].ParentID = model.ParentRef(grandID)
	out.Nodes[idx].UpdatedAt = now
	renumberGroup(out, order, now)
	if grandID != "" {
		out.Expanded[grandID] = true
	}
	out.SelectedID = id
	return rebuild(out)
}

// Move swaps the node with its adjacent sibling by renumbering the group.
// No-op at either boundary.
func Move(st *model.TreeState, id string, dir Direction) *model.TreeState {
	tn := st.FindTreeNode(id)
	if tn == nil {
		return nil
	}
	group := siblingGroup(st, tn.ParentID)
	i := indexIn(group, id)
	if i < 0 {
		return nil
	}
	j := i + 1
	if dir == Up {
		j = i - 1
	}
	if j < 0 || j >= len(group) {
		return nil
	}

	order := groupIDs(group)
	order[i], order[j] = order[j], order[i]

	out := clone(st)
	renumberGroup(out, order, nowUTC())
	return rebuild(out)
}
