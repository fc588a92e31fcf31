package supply

import "math/rand"

// ReduceTiers returns a copy of the graph truncated at an inclusive tier
// cutoff: edges with tier >= maxTier+1 are removed first, then nodes whose
// derived tier is >= maxTier+1, and tiers are re-derived on the survivors.
// An edge nominally at the cutoff depth can still be removed when its tier
// value exceeds the cutoff. Applying the same cutoff twice is a no-op.
func ReduceTiers(g *Graph, maxTier int) (*Graph, error) {
	if g == nil {
		return nil, newError("ReduceTiers", "", ErrNilGraph)
	}

	reduced := g.Clone()

	for src, targets := range reduced.out {
		for dst, e := range targets {
			if e.Tier >= maxTier+1 {
				delete(reduced.out[src], dst)
				delete(reduced.in[dst], src)
			}
		}
	}

	// Node tiers here are still the ones derived before edge removal,
	// matching the reduction order of the reference analysis.
	var doomed []string
	for id, n := range reduced.nodes {
		if n.Tier >= maxTier+1 {
			doomed = append(doomed, id)
		}
	}
	reduced.DeleteNodes(doomed)

	reduced.deriveTiers()
	return reduced, nil
}

// ImputeIndustries fills missing industry labels on a working copy before an
// industry-granularity sweep. Each flagged node receives an industry sampled
// with replacement from the observed (non-imputed) distribution, using the
// caller's seeded source so imputation varies across trials like every other
// random draw. Returns ErrEmptyInput when no observed industries exist.
func ImputeIndustries(g *Graph, rng *rand.Rand) error {
	if g == nil {
		return newError("ImputeIndustries", "", ErrNilGraph)
	}

	var observed []string
	var flagged []*Node
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		if n.IndustryImputed {
			flagged = append(flagged, n)
		} else {
			observed = append(observed, n.Industry)
		}
	}
	if len(flagged) == 0 {
		return nil
	}
	if len(observed) == 0 {
		return newError("ImputeIndustries", "", ErrEmptyInput)
	}

	for _, n := range flagged {
		n.Industry = observed[rng.Intn(len(observed))]
	}
	return nil
}
