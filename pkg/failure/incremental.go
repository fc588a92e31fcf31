package failure

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// Incremental deletes small random batches of nodes from a private working
// copy of the graph. Batch size is ceil(ratio * current node count), so any
// ratio > 0 makes progress and a search over the copy terminates.
type Incremental struct {
	working *supply.Graph
	rng     *rand.Rand
	ratio   float64
	deleted int
}

// NewIncremental clones the graph and prepares batched deletion at the given
// thinning ratio.
func NewIncremental(g *supply.Graph, rng *rand.Rand, ratio float64) *Incremental {
	return &Incremental{
		working: g.Clone(),
		rng:     rng,
		ratio:   ratio,
	}
}

// DeleteBatch removes one random batch of nodes and returns how many were
// deleted. Returns 0 once the working copy is empty.
func (inc *Incremental) DeleteBatch() int {
	ids := inc.working.NodeIDs()
	if len(ids) == 0 {
		return 0
	}

	size := int(math.Ceil(inc.ratio * float64(len(ids))))
	if size > len(ids) {
		size = len(ids)
	}

	// Partial Fisher-Yates: the first size entries of a random permutation.
	for i := 0; i < size; i++ {
		j := i + inc.rng.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	inc.working.DeleteNodes(ids[:size])
	inc.deleted += size
	return size
}

// Graph exposes the current working copy for scoring between batches.
func (inc *Incremental) Graph() *supply.Graph {
	return inc.working
}

// Deleted returns the cumulative number of nodes deleted so far.
func (inc *Incremental) Deleted() int {
	return inc.deleted
}
