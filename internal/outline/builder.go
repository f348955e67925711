// Package outline derives the ordered tree and its flattenings from the
// authoritative flat node list.
package outline

import (
	"sort"

	"treeline-cli/internal/model"
)

// Build nests a flat node list into rank-ordered roots and returns the
// pre-order flattening alongside.
//
// Input may contain duplicate ids (transient states mid-confirm); the last
// occurrence wins. A node whose parent id is not present is promoted to a
// root rather than dropped, so a missing ancestor never hides a subtree.
// Nodes caught in a parent cycle are unreachable from any root; they are
// promoted to roots in (rank, id) order so every input node appears exactly
// once in the output.
func Build(nodes []model.Node) (roots []*model.TreeNode, flat []*model.TreeNode) {
	deduped := Dedupe(nodes)

	present := make(map[string]bool, len(deduped))
	for _, n := range deduped {
		present[n.ID] = true
	}

	children := map[string][]model.Node{}
	var rootNodes []model.Node
	for _, n := range deduped {
		pk := model.ParentKey(n.ParentID)
		if pk == "" || !present[pk] {
			rootNodes = append(rootNodes, n)
			continue
		}
		children[pk] = append(children[pk], n)
	}

	sortGroup(rootNodes)
	for pid := range children {
		sortGroup(children[pid])
	}

	// The visited set doubles as the cycle guard: a child already claimed by
	// an earlier walk is skipped instead of being nested twice (or forever).
	visited := make(map[string]bool, len(deduped))
	var walk func(n model.Node, depth int) *model.TreeNode
	walk = func(n model.Node, depth int) *model.TreeNode {
		visited[n.ID] = true
		tn := &model.TreeNode{Node: n, Depth: depth}
		for _, ch := range children[n.ID] {
			if visited[ch.ID] {
				continue
			}
			tn.Children = append(tn.Children, walk(ch, depth+1))
		}
		return tn
	}

	for _, r := range rootNodes {
		if visited[r.ID] {
			continue
		}
		roots = append(roots, walk(r, 0))
	}

	// Cycle members never showed up under any root. Promote them.
	var leftovers []model.Node
	for _, n := range deduped {
		if !visited[n.ID] {
			leftovers = append(leftovers, n)
		}
	}
	sortGroup(leftovers)
	for _, n := range leftovers {
		if visited[n.ID] {
			continue
		}
		roots = append(roots, walk(n, 0))
	}

	var flatten func(tn *model.TreeNode)
	flatten = func(tn *model.TreeNode) {
		flat = append(flat, tn)
		for _, ch := range tn.Children {
			flatten(ch)
		}
	}
	for _, r := range roots {
		flatten(r)
	}
	return roots, flat
}

// Dedupe removes duplicate ids, keeping the last occurrence of each.
func Dedupe(nodes []model.Node) []model.Node {
	seen := make(map[string]int, len(nodes))
	out := make([]model.Node, 0, len(nodes))
	for _, n := range nodes {
		if i, ok := seen[n.ID]; ok {
			out[i] = n
			continue
		}
		seen[n.ID] = len(out)
		out = append(out, n)
	}
	return out
}

// Visible returns the pre-order flattening restricted to nodes whose entire
// ancestor chain is expanded.
func Visible(roots []*model.TreeNode, expanded map[string]bool) []*model.TreeNode {
	var out []*model.TreeNode
	var walk func(tn *model.TreeNode)
	walk = func(tn *model.TreeNode) {
		out = append(out, tn)
		if !expanded[tn.ID] {
			return
		}
		for _, ch := range tn.Children {
			walk(ch)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

func sortGroup(group []model.Node) {
	// Rank ascending; equal ranks fall back to id so the order is stable
	// across rebuilds (transient duplicates would otherwise reshuffle).
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].Rank != group[j].Rank {
			return group[i].Rank < group[j].Rank
		}
		return group[i].ID < group[j].ID
	})
}
