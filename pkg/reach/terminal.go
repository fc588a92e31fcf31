package reach

import (
	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// TerminalNodes returns the terminal suppliers of the focal node: the members
// of every strongly connected component with zero in-degree in the
// condensation of the subgraph induced on the node's upstream-reachable set.
// A reachable subgraph that is a single node with no edges is its own
// terminal set. The result is immutable for a given graph snapshot and must
// be recomputed after any mutation.
func TerminalNodes(g *supply.Graph, id string) (supply.NodeSet, error) {
	reachable, err := ReachableUpstream(g, id)
	if err != nil {
		return nil, err
	}

	sub := g.Induced(reachable)
	components, nodeComponent := stronglyConnectedComponents(sub)

	// An SCC has upstream supply if any edge from another SCC points into
	// it. Within the reachable subgraph all edges run downstream, so a
	// zero in-degree component has no further supplier.
	hasInbound := make([]bool, len(components))
	for _, src := range sub.NodeIDs() {
		for _, e := range sub.OutEdges(src) {
			from := nodeComponent[e.Source]
			to := nodeComponent[e.Target]
			if from != to {
				hasInbound[to] = true
			}
		}
	}

	terminals := make(supply.NodeSet)
	for i, members := range components {
		if hasInbound[i] {
			continue
		}
		for _, member := range members {
			terminals.Add(member)
		}
	}
	return terminals, nil
}

// stronglyConnectedComponents runs Tarjan's algorithm in O(V+E), following
// outgoing edges only. Returns the component member lists and a node-to-
// component index.
func stronglyConnectedComponents(g *supply.Graph) ([][]string, map[string]int) {
	state := make(map[string]*tarjanState, g.NodeCount())
	nodeComponent := make(map[string]int, g.NodeCount())
	var components [][]string
	var stack []string
	indexCounter := 0

	var strongconnect func(u string)
	strongconnect = func(u string) {
		state[u] = &tarjanState{
			index:   indexCounter,
			lowlink: indexCounter,
			onStack: true,
		}
		indexCounter++
		stack = append(stack, u)

		for _, edge := range g.OutEdges(u) {
			v := edge.Target
			if _, exists := state[v]; !exists {
				strongconnect(v)
				if state[v].lowlink < state[u].lowlink {
					state[u].lowlink = state[v].lowlink
				}
			} else if state[v].onStack {
				if state[v].index < state[u].lowlink {
					state[u].lowlink = state[v].index
				}
			}
		}

		// If u is a root node, pop the stack to form an SCC
		if state[u].lowlink == state[u].index {
			componentID := len(components)
			var members []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				nodeComponent[w] = componentID
				if w == u {
					break
				}
			}
			components = append(components, members)
		}
	}

	for _, id := range g.NodeIDs() {
		if _, exists := state[id]; !exists {
			strongconnect(id)
		}
	}

	return components, nodeComponent
}
