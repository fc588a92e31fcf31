// Package breakdown searches for the failure magnitude at which a node's
// upstream supply collapses: it deletes small random batches of nodes until
// the fraction of the node's original terminal suppliers still reachable
// drops below a configured threshold.
package breakdown

import (
	"errors"
	"math/rand"

	"github.com/dd0wney/cluso-resilience/pkg/failure"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/parallel"
	"github.com/dd0wney/cluso-resilience/pkg/reach"
	"github.com/dd0wney/cluso-resilience/pkg/results"
	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// Searcher runs single breakdown-threshold observations. One Search is one
// observation; distributions are built by repeating it.
type Searcher struct {
	// Threshold is the collapse bound: the search stops once the number of
	// original terminal suppliers still reachable falls below
	// Threshold * |terminal set|.
	Threshold float64

	// ThinningRatio sizes each deletion batch as ceil(ratio * current
	// node count).
	ThinningRatio float64

	Logger   logging.Logger
	Registry *metrics.Registry
}

// Search deletes random batches from a working copy until the focal node's
// terminal-reachable count collapses, and returns the cumulative number of
// nodes deleted. When a batch removes the focal node itself the search halts
// early and the count so far is returned as a conservative partial result.
// The terminal set is always the one computed on the original graph.
func (s *Searcher) Search(g *supply.Graph, nodeID string, rng *rand.Rand) (int, error) {
	log := s.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	registry := s.Registry
	if registry == nil {
		registry = metrics.Default()
	}

	terminals, err := reach.TerminalNodes(g, nodeID)
	if err != nil {
		return 0, err
	}

	inc := failure.NewIncremental(g, rng, s.ThinningRatio)
	collapseBound := s.Threshold * float64(terminals.Len())
	reachable := terminals.Len()
	iterations := 0

	for float64(reachable) >= collapseBound {
		if inc.DeleteBatch() == 0 {
			break // working copy exhausted
		}
		iterations++

		u, err := reach.ReachableUpstream(inc.Graph(), nodeID)
		if err != nil {
			if errors.Is(err, supply.ErrNodeNotFound) {
				log.Debug("focal node deleted before collapse",
					logging.NodeID(nodeID),
					logging.Int("deleted", inc.Deleted()))
				break
			}
			return 0, err
		}
		reachable = u.IntersectCount(terminals)
	}

	registry.BreakdownSearchesTotal.Inc()
	registry.BreakdownIterations.Observe(float64(iterations))
	registry.BreakdownDeletedNodes.Observe(float64(inc.Deleted()))
	return inc.Deleted(), nil
}

// Candidates returns the tier-0 nodes whose upstream-reachable set counts at
// least minReachable nodes, sorted by ID. These are the focal nodes worth a
// threshold distribution; nodes with few reachable suppliers carry no signal.
func Candidates(g *supply.Graph, minReachable int) ([]string, error) {
	if g == nil {
		return nil, supply.ErrNilGraph
	}
	var ids []string
	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if !ok || n.Tier != 0 {
			continue
		}
		u, err := reach.ReachableUpstream(g, id)
		if err != nil {
			return nil, err
		}
		if u.Len() >= minReachable {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Thresholds builds the breakdown-threshold matrix: repeats independent
// observations per candidate node, fanned out across (node, repeat) pairs on
// the pool when one is supplied. Each pair gets its own seeded source.
func (s *Searcher) Thresholds(g *supply.Graph, nodes []string, repeats int, seed int64, pool *parallel.Pool) (*results.ThresholdTable, error) {
	if g == nil {
		return nil, supply.ErrNilGraph
	}
	if repeats <= 0 {
		repeats = 1
	}

	type pair struct {
		idx    int
		node   string
		repeat int
	}
	pairs := make([]pair, 0, len(nodes)*repeats)
	for _, id := range nodes {
		for k := 0; k < repeats; k++ {
			pairs = append(pairs, pair{idx: len(pairs), node: id, repeat: k})
		}
	}

	type outcome struct {
		deleted int
		err     error
	}
	outcomes, err := parallel.Map(pool, pairs, func(p pair) outcome {
		rng := rand.New(rand.NewSource(seed + int64(p.idx)))
		deleted, err := s.Search(g, p.node, rng)
		return outcome{deleted: deleted, err: err}
	})
	if err != nil {
		return nil, err
	}

	table := results.NewThresholdTable(nodes, repeats)
	for i, out := range outcomes {
		if out.err != nil {
			return nil, out.err
		}
		table.Set(pairs[i].node, pairs[i].repeat, out.deleted)
	}
	return table, nil
}
