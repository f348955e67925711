package engine

import (
	"treeline-cli/internal/model"
	"treeline-cli/internal/rank"
)

// BeginInlineCreate opens an inline-create session anchored at sourceID.
// afterID defaults to the source itself (insert right after it) and parentID
// defaults to the source's parent. No-op when the source is unknown or a
// session is already active.
func BeginInlineCreate(st *model.TreeState, tempID, sourceID, afterID string, parentID *string) *model.TreeState {
	if st.InlineCreate != nil {
		return nil
	}
	src := st.FindTreeNode(sourceID)
	if src == nil {
		return nil
	}
	if afterID == "" {
		afterID = sourceID
	}
	if parentID == nil {
		parentID = src.ParentID
	}
	out := clone(st)
	out.InlineCreate = &model.InlineCreateSession{
		TempID:         tempID,
		SourceID:       sourceID,
		AfterID:        afterID,
		ParentID:       parentID,
		PrevSelectedID: st.SelectedID,
	}
	return rebuild(out)
}

// AddInlineCreatePlaceholder inserts (or repositions) the placeholder node
// immediately after afterID within node.ParentID's sibling group, appending
// when afterID is blank or not part of the group. The rank comes from the
// allocator; if precision is exhausted the group is renumbered first.
func AddInlineCreatePlaceholder(st *model.TreeState, afterID string, node model.Node) *model.TreeState {
	if node.ID == "" {
		return nil
	}
	node.Placeholder = true

	out := clone(st)
	now := nowUTC()

	// Sibling group the placeholder lands in, without the placeholder itself
	// (repositioning must not anchor on its own old slot).
	group := siblingGroup(st, node.ParentID)
	neighbors := make([]*model.TreeNode, 0, len(group))
	for _, tn := range group {
		if tn.ID != node.ID {
			neighbors = append(neighbors, tn)
		}
	}

	anchor := -1
	if afterID != "" {
		anchor = indexIn(neighbors, afterID)
	}

	r, ok := placeholderRank(neighbors, anchor)
	if !ok {
		// Precision exhausted between the anchor and its next sibling.
		// Renumber the group; neighbors then sit at (i+1)*Step and the
		// midpoint always fits.
		renumberGroup(out, groupIDs(neighbors), now)
		r, _ = rank.Between(rank.ForIndex(anchor), rank.ForIndex(anchor+1))
	}
	node.Rank = r

	if node.CreatedAt.IsZero() {
		node.CreatedAt = now
	}
	node.UpdatedAt = now

	if idx := out.FindNode(node.ID); idx >= 0 {
		out.Nodes[idx] = node
	} else {
		out.Nodes = append(out.Nodes, node)
	}
	out.SelectedID = node.ID
	return rebuild(out)
}

// CancelInlineCreate removes the placeholder and restores the selection:
// previous selection, else the anchor, else whatever is currently selected.
func CancelInlineCreate(st *model.TreeState, tempID string) *model.TreeState {
	s := st.InlineCreate
	if s == nil || s.TempID != tempID {
		return nil
	}

	out := clone(st)
	if idx := out.FindNode(tempID); idx >= 0 {
		out.Nodes = append(out.Nodes[:idx], out.Nodes[idx+1:]...)
	}
	delete(out.Expanded, tempID)

	switch {
	case s.PrevSelectedID != "" && hasNode(out, s.PrevSelectedID):
		out.SelectedID = s.PrevSelectedID
	case s.AfterID != "" && hasNode(out, s.AfterID):
		out.SelectedID = s.AfterID
	}
	out.InlineCreate = nil
	return rebuild(out)
}

// ConfirmInlineCreate promotes the placeholder: its id becomes finalID (the
// temp id is kept when finalID is blank), the placeholder flag clears, and a
// pre-existing node with the final id is dropped so ids stay unique.
func ConfirmInlineCreate(st *model.TreeState, tempID, finalID string) *model.TreeState {
	s := st.InlineCreate
	if s == nil || s.TempID != tempID {
		return nil
	}
	if st.FindNode(tempID) < 0 {
		return nil
	}
	if finalID == "" {
		finalID = tempID
	}

	out := clone(st)
	if finalID != tempID {
		if idx := out.FindNode(finalID); idx >= 0 {
			out.Nodes = append(out.Nodes[:idx], out.Nodes[idx+1:]...)
		}
	}
	idx := out.FindNode(tempID)
	out.Nodes[idx].ID = finalID
	out.Nodes[idx].Placeholder = false
	out.Nodes[idx].UpdatedAt = nowUTC()
	if out.Expanded[tempID] {
		delete(out.Expanded, tempID)
		out.Expanded[finalID] = true
	}
	out.SelectedID = finalID
	out.InlineCreate = nil
	return rebuild(out)
}

// placeholderRank picks a rank after neighbors[anchor] (append when anchor
// is -1). ok is false when the allocator ran out of precision.
func placeholderRank(neighbors []*model.TreeNode, anchor int) (float64, bool) {
	if len(neighbors) == 0 {
		return rank.Initial(), true
	}
	if anchor < 0 {
		return rank.After(neighbors[len(neighbors)-1].Rank), true
	}
	if anchor == len(neighbors)-1 {
		return rank.After(neighbors[anchor].Rank), true
	}
	return rank.Between(neighbors[anchor].Rank, neighbors[anchor+1].Rank)
}

func hasNode(st *model.TreeState, id string) bool {
	return st.FindNode(id) >= 0
}
