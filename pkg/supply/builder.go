package supply

// Build constructs a graph from a cleaned edge list. The node set is the
// union of all sources and targets. Parallel edges are merged keeping the
// minimum tier, self-loops are dropped, and node tiers are derived once all
// edges are in place. Returns ErrEmptyInput when the record list is empty.
func Build(records []EdgeRecord) (*Graph, error) {
	if len(records) == 0 {
		return nil, newError("Build", "", ErrEmptyInput)
	}

	g := NewGraph()
	for _, rec := range records {
		if rec.Source == rec.Target {
			continue // loops are excluded
		}
		g.ensureNode(rec.Source, rec.SourceCountry, rec.SourceIndustry)
		g.ensureNode(rec.Target, rec.TargetCountry, rec.TargetIndustry)
		g.addEdge(rec.Source, rec.Target, rec.Tier)
	}
	g.deriveTiers()
	return g, nil
}

// ensureNode adds the node if absent and backfills categorical attributes.
// A node seen first as a bare endpoint keeps its imputed flags until a later
// record supplies the real value.
func (g *Graph) ensureNode(id, country, industry string) {
	n, ok := g.nodes[id]
	if !ok {
		n = &Node{
			ID:              id,
			Country:         country,
			Industry:        industry,
			CountryImputed:  country == "",
			IndustryImputed: industry == "",
		}
		g.nodes[id] = n
		g.out[id] = make(map[string]*Edge)
		g.in[id] = make(map[string]*Edge)
		return
	}
	if n.CountryImputed && country != "" {
		n.Country = country
		n.CountryImputed = false
	}
	if n.IndustryImputed && industry != "" {
		n.Industry = industry
		n.IndustryImputed = false
	}
}

// addEdge inserts a directed edge, merging duplicates by keeping the minimum
// tier value.
func (g *Graph) addEdge(source, target string, tier int) {
	if e, ok := g.out[source][target]; ok {
		if tier < e.Tier {
			e.Tier = tier
		}
		return
	}
	e := &Edge{Source: source, Target: target, Tier: tier}
	g.out[source][target] = e
	g.in[target][source] = e
}

// deriveTiers recomputes every node's tier as the minimum tier of its
// outgoing edges, or 0 when it has none. Must run whenever edges change.
func (g *Graph) deriveTiers() {
	for id, n := range g.nodes {
		tier := 0
		first := true
		for _, e := range g.out[id] {
			if first || e.Tier < tier {
				tier = e.Tier
				first = false
			}
		}
		n.Tier = tier
	}
}
