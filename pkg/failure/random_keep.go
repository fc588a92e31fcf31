package failure

import (
	"math"
	"math/rand"
	"sort"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// Strategy produces a reduced subgraph for a given keep-fraction. A strategy
// is built once per trial: its random draws are fixed at construction, so
// within one trial the kept node set is monotone in rho.
type Strategy interface {
	// Thin returns the subgraph induced on the kept nodes at keep-fraction
	// rho in [0, 1]. The receiver's graph is never mutated.
	Thin(rho float64) *supply.Graph
	// Description is the attack-type label stamped into result rows.
	Description() string
}

// Factory builds a fresh strategy for one trial with independent draws.
type Factory func(g *supply.Graph, rng *rand.Rand) Strategy

// RandomKeep keeps each unit (firm or whole category) independently at
// random. Firm granularity draws one uniform value per node and keeps nodes
// with draw <= rho. Category granularities fix one random permutation of the
// distinct category values and keep the first round(rho * |categories|)
// entries, so a category is kept or dropped as a whole.
type RandomKeep struct {
	graph      *supply.Graph
	scale      Scale
	draws      map[string]float64
	categories []string
}

// NewRandomKeep captures the per-trial randomness for the given graph and
// granularity. Draws are taken in sorted node-ID order so a seeded source
// reproduces the same trial.
func NewRandomKeep(g *supply.Graph, rng *rand.Rand, scale Scale) *RandomKeep {
	rk := &RandomKeep{graph: g, scale: scale}

	if scale == ScaleFirm {
		rk.draws = make(map[string]float64, g.NodeCount())
		for _, id := range g.NodeIDs() {
			rk.draws[id] = rng.Float64()
		}
		return rk
	}

	seen := make(map[string]struct{})
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		seen[scale.CategoryOf(n)] = struct{}{}
	}
	rk.categories = make([]string, 0, len(seen))
	for c := range seen {
		rk.categories = append(rk.categories, c)
	}
	sort.Strings(rk.categories)
	rng.Shuffle(len(rk.categories), func(i, j int) {
		rk.categories[i], rk.categories[j] = rk.categories[j], rk.categories[i]
	})
	return rk
}

// Thin implements Strategy.
func (rk *RandomKeep) Thin(rho float64) *supply.Graph {
	keep := make(supply.NodeSet)

	if rk.scale == ScaleFirm {
		for id, draw := range rk.draws {
			if draw <= rho {
				keep.Add(id)
			}
		}
		return rk.graph.Induced(keep)
	}

	kept := make(map[string]struct{}, len(rk.categories))
	for _, c := range rk.categories[:categoryKeepCount(rho, len(rk.categories))] {
		kept[c] = struct{}{}
	}
	rk.graph.EachNode(func(n *supply.Node) {
		if _, ok := kept[rk.scale.CategoryOf(n)]; ok {
			keep.Add(n.ID)
		}
	})
	return rk.graph.Induced(keep)
}

// Description implements Strategy.
func (rk *RandomKeep) Description() string {
	return "Random"
}

// categoryKeepCount rounds half away from zero, the single definition of the
// category keep boundary so threshold searches stay reproducible.
func categoryKeepCount(rho float64, categories int) int {
	k := int(math.Round(rho * float64(categories)))
	if k < 0 {
		return 0
	}
	if k > categories {
		return categories
	}
	return k
}

// RandomKeepFactory returns a Factory for the given granularity.
func RandomKeepFactory(scale Scale) Factory {
	return func(g *supply.Graph, rng *rand.Rand) Strategy {
		return NewRandomKeep(g, rng, scale)
	}
}
