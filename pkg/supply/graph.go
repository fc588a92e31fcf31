package supply

import "sort"

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.out {
		n += len(targets)
	}
	return n
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns all node IDs in sorted order. Sorting keeps seeded random
// selections reproducible across runs.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EachNode calls fn for every node. Iteration order is unspecified.
func (g *Graph) EachNode(fn func(*Node)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// OutEdges returns the outgoing edges of a node.
func (g *Graph) OutEdges(id string) []*Edge {
	targets := g.out[id]
	edges := make([]*Edge, 0, len(targets))
	for _, e := range targets {
		edges = append(edges, e)
	}
	return edges
}

// InSources returns the IDs of nodes with an edge into the given node, i.e.
// one reverse-traversal step.
func (g *Graph) InSources(id string) []string {
	sources := g.in[id]
	ids := make([]string, 0, len(sources))
	for src := range sources {
		ids = append(ids, src)
	}
	return ids
}

// Clone returns a deep copy of the graph. Node and edge structs are copied,
// so mutations of the clone never leak back.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for id, n := range g.nodes {
		cp := *n
		c.nodes[id] = &cp
		c.out[id] = make(map[string]*Edge, len(g.out[id]))
		c.in[id] = make(map[string]*Edge, len(g.in[id]))
	}
	for src, targets := range g.out {
		for dst, e := range targets {
			ce := *e
			c.out[src][dst] = &ce
			c.in[dst][src] = &ce
		}
	}
	return c
}

// Induced returns the subgraph on the kept node set: kept nodes plus every
// edge whose endpoints are both kept. Node attributes, including derived
// tiers, carry over unchanged from the source graph.
func (g *Graph) Induced(keep NodeSet) *Graph {
	sub := NewGraph()
	for id := range keep {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		cp := *n
		sub.nodes[id] = &cp
		sub.out[id] = make(map[string]*Edge)
		sub.in[id] = make(map[string]*Edge)
	}
	for src := range sub.nodes {
		for dst, e := range g.out[src] {
			if _, ok := sub.nodes[dst]; !ok {
				continue
			}
			ce := *e
			sub.out[src][dst] = &ce
			sub.in[dst][src] = &ce
		}
	}
	return sub
}

// DeleteNodes removes the given nodes and all incident edges. Intended for
// working copies during failure injection; node tiers are left as derived on
// the canonical graph, matching how thinned snapshots are scored.
func (g *Graph) DeleteNodes(ids []string) {
	for _, id := range ids {
		if _, ok := g.nodes[id]; !ok {
			continue
		}
		for dst := range g.out[id] {
			delete(g.in[dst], id)
		}
		for src := range g.in[id] {
			delete(g.out[src], id)
		}
		delete(g.out, id)
		delete(g.in, id)
		delete(g.nodes, id)
	}
}
