package cli

import (
	"context"
	"fmt"

	"treeline-cli/internal/state"
	"treeline-cli/internal/store"

	"github.com/spf13/cobra"
)

// applyMutation edits db.Nodes directly, saves, and logs one event.
func applyMutation(cmd *cobra.Command, app *App, opType, nodeID string, payload map[string]any, fn func(*store.DB) error) error {
	db, s, err := loadDB(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(db); err != nil {
		return writeErr(cmd, err)
	}
	if err := s.Save(db); err != nil {
		return writeErr(cmd, err)
	}
	_ = s.AppendEvent(context.Background(), store.Event{Type: opType, NodeID: nodeID, Payload: payload})

	if i := db.FindNode(nodeID); i >= 0 {
		return writeOut(cmd, app, map[string]any{"data": db.Nodes[i]})
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": nodeID}})
}

// applyEngineOp routes a structural op through the tree state container so
// CLI commands and the TUI share the exact same mutation semantics.
func applyEngineOp(cmd *cobra.Command, app *App, opType, nodeID string, payload map[string]any, fn func(*state.Store) bool) error {
	db, s, err := loadDB(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if db.FindNode(nodeID) < 0 {
		return writeErr(cmd, errNotFound("node", nodeID))
	}

	st := state.New(db.Nodes)
	if !fn(st) {
		return writeErr(cmd, fmt.Errorf("%s is a no-op for %s", opType, nodeID))
	}
	db.Nodes = st.State().Nodes

	if err := s.Save(db); err != nil {
		return writeErr(cmd, err)
	}
	_ = s.AppendEvent(context.Background(), store.Event{Type: opType, NodeID: nodeID, Payload: payload})

	if i := db.FindNode(nodeID); i >= 0 {
		return writeOut(cmd, app, map[string]any{"data": db.Nodes[i]})
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": nodeID}})
}
