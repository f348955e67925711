package cli

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"treeline-cli/internal/model"
	"treeline-cli/internal/outline"
	"treeline-cli/internal/rank"
	"treeline-cli/internal/state"
	"treeline-cli/internal/store"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var parent string
	var after string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a node (root by default; --parent nests, --after places)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var parentID *string
			if p := strings.TrimSpace(parent); p != "" {
				if db.FindNode(p) < 0 {
					return writeErr(cmd, errNotFound("node", p))
				}
				parentID = model.ParentRef(p)
			}

			sibs := siblingNodes(db, parentID)
			var r float64
			if a := strings.TrimSpace(after); a != "" {
				i := indexOfNode(sibs, a)
				if i < 0 {
					return writeErr(cmd, errors.New("--after node is not a sibling under the chosen parent"))
				}
				if i+1 < len(sibs) {
					var ok bool
					if r, ok = rank.Between(sibs[i].Rank, sibs[i+1].Rank); !ok {
						renumberSiblings(sibs)
						r, _ = rank.Between(rank.ForIndex(i), rank.ForIndex(i+1))
					}
				} else {
					r = rank.After(sibs[i].Rank)
				}
			} else if len(sibs) > 0 {
				r = rank.After(sibs[len(sibs)-1].Rank)
			} else {
				r = rank.Initial()
			}

			id, err := store.NewNodeID(db)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			n := model.Node{
				ID:        id,
				ParentID:  parentID,
				Title:     args[0],
				Rank:      r,
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Nodes = append(db.Nodes, n)

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(context.Background(), store.Event{
				Type:   "add",
				NodeID: id,
				Payload: map[string]any{
					"title": n.Title, "parent": parent, "after": after, "rank": n.Rank,
				},
			})
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent node id (empty for root)")
	cmd.Flags().StringVar(&after, "after", "", "Place after this sibling id")
	return cmd
}

type listRow struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parentId,omitempty"`
	Title    string  `json:"title"`
	Rank     float64 `json:"rank"`
	Depth    int     `json:"depth"`
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List nodes in tree order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, flat := outline.Build(db.Nodes)
			rows := make([]listRow, 0, len(flat))
			for _, tn := range flat {
				rows = append(rows, listRow{
					ID:       tn.ID,
					ParentID: tn.ParentID,
					Title:    tn.Title,
					Rank:     tn.Rank,
					Depth:    tn.Depth,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <node-id> <title>",
		Short: "Set a node's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyMutation(cmd, app, "rename", args[0],
				map[string]any{"title": args[1]},
				func(db *store.DB) error {
					i := db.FindNode(args[0])
					if i < 0 {
						return errNotFound("node", args[0])
					}
					db.Nodes[i].Title = args[1]
					db.Nodes[i].UpdatedAt = time.Now().UTC()
					return nil
				})
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete a node and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEngineOp(cmd, app, "delete", args[0], nil,
				func(st *state.Store) bool { return st.Delete(args[0]) })
		},
	}
}

func siblingNodes(db *store.DB, parentID *string) []*model.Node {
	var out []*model.Node
	for i := range db.Nodes {
		n := &db.Nodes[i]
		if model.SameParent(n.ParentID, parentID) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func indexOfNode(xs []*model.Node, id string) int {
	for i, x := range xs {
		if x.ID == id {
			return i
		}
	}
	return -1
}

func renumberSiblings(sibs []*model.Node) {
	now := time.Now().UTC()
	for i, n := range sibs {
		want := rank.ForIndex(i)
		if n.Rank != want {
			n.Rank = want
			n.UpdatedAt = now
		}
	}
}
