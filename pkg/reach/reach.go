// Package reach computes upstream reachability over a supply graph: which
// suppliers a focal firm can still draw on, and which of those are terminal
// (no further supplier of their own, accounting for cycles via strongly
// connected component condensation).
package reach

import (
	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// ReachableUpstream returns the set of node IDs reachable from the start node
// by following edges in reverse (from target back to source), including the
// start node itself. A node with no predecessors yields just itself.
// Deterministic; no randomness.
func ReachableUpstream(g *supply.Graph, id string) (supply.NodeSet, error) {
	if g == nil {
		return nil, supply.ErrNilGraph
	}
	if !g.HasNode(id) {
		return nil, supply.ErrNodeNotFound
	}

	visited := supply.NewNodeSet(id)
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, src := range g.InSources(current) {
			if visited.Has(src) {
				continue
			}
			visited.Add(src)
			queue = append(queue, src)
		}
	}
	return visited, nil
}

// DemandNodes returns the IDs of all tier-1 nodes, the focal firms from which
// upstream resilience is measured. The result is sorted and may be empty;
// callers must tolerate a zero-length demand set.
func DemandNodes(g *supply.Graph) []string {
	if g == nil {
		return nil
	}
	var ids []string
	for _, id := range g.NodeIDs() {
		if n, ok := g.Node(id); ok && n.Tier == 1 {
			ids = append(ids, id)
		}
	}
	return ids
}
