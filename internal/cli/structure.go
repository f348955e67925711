package cli

import (
	"errors"

	"treeline-cli/internal/state"

	"github.com/spf13/cobra"
)

func newIndentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "indent <node-id>",
		Short: "Nest a node under its previous sibling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEngineOp(cmd, app, "indent", args[0], nil,
				func(st *state.Store) bool { return st.Indent(args[0]) })
		},
	}
}

func newOutdentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "outdent <node-id>",
		Short: "Move a node up one level, after its current parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEngineOp(cmd, app, "outdent", args[0], nil,
				func(st *state.Store) bool { return st.Outdent(args[0]) })
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <node-id> <up|down>",
		Short: "Reorder a node among its siblings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			switch args[1] {
			case "up":
				return applyEngineOp(cmd, app, "move", id, map[string]any{"direction": "up"},
					func(st *state.Store) bool { return st.MoveUp(id) })
			case "down":
				return applyEngineOp(cmd, app, "move", id, map[string]any{"direction": "down"},
					func(st *state.Store) bool { return st.MoveDown(id) })
			default:
				return writeErr(cmd, errors.New("direction must be up or down"))
			}
		},
	}
}
