package reach

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// graphFromInts decodes a flat int slice into (source, target, tier) triples
// over a small node universe, so generated graphs are dense enough to contain
// cycles and shared upstream paths.
func graphFromInts(vals []int) *supply.Graph {
	if len(vals) < 3 {
		return nil
	}
	var records []supply.EdgeRecord
	for i := 0; i+2 < len(vals); i += 3 {
		src := abs(vals[i]) % 12
		dst := abs(vals[i+1]) % 12
		if src == dst {
			continue
		}
		records = append(records, supply.EdgeRecord{
			Source: fmt.Sprintf("n%02d", src),
			Target: fmt.Sprintf("n%02d", dst),
			Tier:   abs(vals[i+2])%4 + 1,
		})
	}
	if len(records) == 0 {
		return nil
	}
	g, err := supply.Build(records)
	if err != nil {
		return nil
	}
	return g
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestReachabilityInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	edgeGen := gen.SliceOfN(30, gen.IntRange(0, 1000))

	properties.Property("terminal suppliers are a subset of reachable suppliers", prop.ForAll(
		func(vals []int) bool {
			g := graphFromInts(vals)
			if g == nil {
				return true
			}
			for _, id := range g.NodeIDs() {
				reachable, err := ReachableUpstream(g, id)
				if err != nil {
					return false
				}
				terminals, err := TerminalNodes(g, id)
				if err != nil {
					return false
				}
				for tid := range terminals {
					if !reachable.Has(tid) {
						return false
					}
				}
			}
			return true
		},
		edgeGen,
	))

	properties.Property("every node reaches itself", prop.ForAll(
		func(vals []int) bool {
			g := graphFromInts(vals)
			if g == nil {
				return true
			}
			for _, id := range g.NodeIDs() {
				u, err := ReachableUpstream(g, id)
				if err != nil || !u.Has(id) {
					return false
				}
			}
			return true
		},
		edgeGen,
	))

	properties.Property("terminal set is never empty for an existing node", prop.ForAll(
		func(vals []int) bool {
			g := graphFromInts(vals)
			if g == nil {
				return true
			}
			for _, id := range g.NodeIDs() {
				terminals, err := TerminalNodes(g, id)
				if err != nil || terminals.Len() == 0 {
					return false
				}
			}
			return true
		},
		edgeGen,
	))

	properties.Property("recomputing terminal nodes is stable", prop.ForAll(
		func(vals []int) bool {
			g := graphFromInts(vals)
			if g == nil {
				return true
			}
			for _, id := range g.NodeIDs() {
				first, err := TerminalNodes(g, id)
				if err != nil {
					return false
				}
				second, err := TerminalNodes(g, id)
				if err != nil || first.Len() != second.Len() {
					return false
				}
				for tid := range first {
					if !second.Has(tid) {
						return false
					}
				}
			}
			return true
		},
		edgeGen,
	))

	properties.TestingRun(t)
}
