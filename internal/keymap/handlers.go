package keymap

import (
	"treeline-cli/internal/model"
)

func registerDefaultHandlers(d *Dispatcher) {
	d.RegisterHandler(ActionSelect, handleSelect)
	d.RegisterHandler(ActionExpand, handleExpand)
	d.RegisterHandler(ActionCollapse, handleCollapse)
	d.RegisterHandler(ActionCollapseToParent, handleCollapseToParent)
	d.RegisterHandler(ActionMove, handleMove)
	d.RegisterHandler(ActionIndent, func(rt *Runtime, _ []string) bool {
		return rt.State.SelectedID != "" && rt.Actions.Indent(rt.State.SelectedID)
	})
	d.RegisterHandler(ActionOutdent, func(rt *Runtime, _ []string) bool {
		return rt.State.SelectedID != "" && rt.Actions.Outdent(rt.State.SelectedID)
	})
	d.RegisterHandler(ActionDelete, func(rt *Runtime, _ []string) bool {
		return rt.State.SelectedID != "" && rt.Actions.Delete(rt.State.SelectedID)
	})
	d.RegisterHandler(ActionEditTitle, handleEditTitle)
	d.RegisterHandler(ActionInlineCreate, handleInlineCreate)
}

// handleSelect moves the selection within the visible order. With nothing
// selected it jumps to the first (next) or last (prev) visible node.
func handleSelect(rt *Runtime, args []string) bool {
	if len(rt.Visible) == 0 || len(args) == 0 {
		return false
	}
	cur := -1
	for i, tn := range rt.Visible {
		if tn.ID == rt.State.SelectedID {
			cur = i
			break
		}
	}
	var target int
	switch args[0] {
	case "next":
		if cur < 0 {
			target = 0
		} else if cur+1 < len(rt.Visible) {
			target = cur + 1
		} else {
			target = cur
		}
	case "prev":
		if cur < 0 {
			target = len(rt.Visible) - 1
		} else if cur > 0 {
			target = cur - 1
		} else {
			target = cur
		}
	default:
		return false
	}
	rt.Actions.Select(rt.Visible[target].ID)
	return true
}

func handleExpand(rt *Runtime, _ []string) bool {
	tn := rt.NodeByID[rt.State.SelectedID]
	if tn == nil || len(tn.Children) == 0 || rt.Expanded[tn.ID] {
		return false
	}
	rt.Actions.ToggleExpanded(tn.ID)
	return true
}

func handleCollapse(rt *Runtime, _ []string) bool {
	tn := rt.NodeByID[rt.State.SelectedID]
	if tn == nil || !rt.Expanded[tn.ID] {
		return false
	}
	rt.Actions.ToggleExpanded(tn.ID)
	return true
}

// handleCollapseToParent collapses the node; when it has no children or is
// already collapsed, the selection climbs to the parent instead.
func handleCollapseToParent(rt *Runtime, _ []string) bool {
	tn := rt.NodeByID[rt.State.SelectedID]
	if tn == nil {
		return false
	}
	if len(tn.Children) > 0 && rt.Expanded[tn.ID] {
		rt.Actions.ToggleExpanded(tn.ID)
		return true
	}
	if pk := model.ParentKey(tn.ParentID); pk != "" {
		rt.Actions.Select(pk)
		return true
	}
	return false
}

func handleMove(rt *Runtime, args []string) bool {
	id := rt.State.SelectedID
	if id == "" || len(args) == 0 {
		return false
	}
	switch args[0] {
	case "up":
		return rt.Actions.MoveUp(id)
	case "down":
		return rt.Actions.MoveDown(id)
	}
	return false
}

func handleEditTitle(rt *Runtime, _ []string) bool {
	if rt.State.SelectedID == "" || rt.EditTitle == nil {
		return false
	}
	rt.EditTitle(rt.State.SelectedID)
	return true
}

func handleInlineCreate(rt *Runtime, args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "start":
		src := rt.NodeByID[rt.State.SelectedID]
		if src == nil || rt.State.InlineCreate != nil || rt.NewTempID == nil {
			return false
		}
		tempID := rt.NewTempID()
		if !rt.Actions.BeginInlineCreate(tempID, src.ID, src.ID, src.ParentID) {
			return false
		}
		return rt.Actions.AddInlineCreatePlaceholder(src.ID, model.Node{
			ID:       tempID,
			ParentID: src.ParentID,
		})
	case "confirm":
		s := rt.State.InlineCreate
		// The backend assigns permanent ids asynchronously; confirming from
		// the keyboard keeps the temp id and lets the host swap it later.
		return s != nil && rt.Actions.ConfirmInlineCreate(s.TempID, "")
	case "cancel":
		s := rt.State.InlineCreate
		return s != nil && rt.Actions.CancelInlineCreate(s.TempID)
	}
	return false
}
