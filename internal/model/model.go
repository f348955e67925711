package model

import (
	"strings"
	"time"
)

// Node is the authoritative flat record for one outline entry.
//
// Rank orders siblings that share the same ParentID. Values need not be
// contiguous or globally unique; only the relative order within a sibling
// group matters.
type Node struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parentId,omitempty"`
	Title    string  `json:"title"`
	Rank     float64 `json:"rank"`

	// Placeholder marks a node belonging to an unconfirmed inline-create
	// session. Confirm clears the flag; cancel removes the node entirely.
	Placeholder bool `json:"placeholder,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Extra carries host-owned fields. The engine never inspects it.
	Extra map[string]any `json:"extra,omitempty"`
}

// TreeNode is a Node nested under its parent, derived from the flat list.
// Children are in rank order. Depth is 0 for roots.
type TreeNode struct {
	Node
	Children []*TreeNode
	Depth    int
}

// InlineCreateSession is the bounded interval between beginning an inline
// creation and confirming or cancelling it. At most one is active at a time.
type InlineCreateSession struct {
	TempID         string  `json:"tempId"`
	SourceID       string  `json:"sourceId"`
	AfterID        string  `json:"afterId,omitempty"`
	ParentID       *string `json:"parentId,omitempty"`
	PrevSelectedID string  `json:"prevSelectedId,omitempty"`
}

// TreeState is one tree instance: the authoritative node list, the derived
// ordered tree and pre-order flattening, and the transient session state.
type TreeState struct {
	Nodes []Node

	Roots []*TreeNode
	Flat  []*TreeNode

	Expanded     map[string]bool
	SelectedID   string
	InlineCreate *InlineCreateSession
}

// ParentKey normalizes a parent reference: nil and blank both mean "root".
func ParentKey(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// SameParent reports whether two parent references point at the same group.
func SameParent(a, b *string) bool {
	return ParentKey(a) == ParentKey(b)
}

// ParentRef returns a parent reference for id; blank means root (nil).
func ParentRef(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

// FindNode returns the index of id in Nodes, or -1.
func (s *TreeState) FindNode(id string) int {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTreeNode resolves id in the derived flattening, or nil.
func (s *TreeState) FindTreeNode(id string) *TreeNode {
	if id == "" {
		return nil
	}
	for _, tn := range s.Flat {
		if tn.ID == id {
			return tn
		}
	}
	return nil
}
