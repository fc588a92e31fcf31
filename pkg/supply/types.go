// Package supply models a tiered firm-to-firm supply network as a directed
// graph. Nodes are firms addressed by stable string IDs, edges carry the tier
// depth reported for the relationship, and node tiers are always derived from
// outgoing edges rather than set directly.
package supply

// Node is a firm in the supply network. Tier is derived: the minimum tier of
// the node's outgoing edges, or 0 when it has none.
type Node struct {
	ID       string
	Tier     int
	Country  string
	Industry string

	// Imputed flags mark attributes that were missing in the input and
	// either defaulted or filled in by ImputeIndustries.
	CountryImputed  bool
	IndustryImputed bool
}

// Edge is a directed supply relationship. After construction there is at most
// one edge per ordered (Source, Target) pair; duplicates are merged keeping
// the minimum tier.
type Edge struct {
	Source string
	Target string
	Tier   int
}

// EdgeRecord is one row of the cleaned edge list handed over by the ingestion
// collaborator. Country and industry columns are optional and only consulted
// by the non-firm failure granularities.
type EdgeRecord struct {
	Source string
	Target string
	Tier   int

	SourceCountry  string
	TargetCountry  string
	SourceIndustry string
	TargetIndustry string
}

// Graph is a directed, simple supply network. Nodes are keyed by ID, so
// lookups stay well-defined across batched deletions. The canonical graph of
// an analysis run is never thinned in place; failure injection works on
// copies produced by Clone or Induced.
type Graph struct {
	nodes map[string]*Node
	out   map[string]map[string]*Edge
	in    map[string]map[string]*Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		out:   make(map[string]map[string]*Edge),
		in:    make(map[string]map[string]*Edge),
	}
}
