package reach

import (
	"testing"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

func TestTerminalNodes_DiamondRoots(t *testing.T) {
	// Two root suppliers feeding one intermediary feeding the focal node.
	g := buildTestGraph(t, []supply.EdgeRecord{
		{Source: "t1", Target: "a", Tier: 2},
		{Source: "t2", Target: "a", Tier: 2},
		{Source: "a", Target: "s", Tier: 1},
	})

	terminals, err := TerminalNodes(g, "s")
	if err != nil {
		t.Fatalf("TerminalNodes failed: %v", err)
	}
	assertSet(t, terminals, "t1", "t2")
}

func TestTerminalNodes_SingleNodeIsItsOwnTerminal(t *testing.T) {
	g := buildTestGraph(t, []supply.EdgeRecord{
		{Source: "t", Target: "a", Tier: 1},
	})

	terminals, err := TerminalNodes(g, "t")
	if err != nil {
		t.Fatalf("TerminalNodes failed: %v", err)
	}
	assertSet(t, terminals, "t")
}

func TestTerminalNodes_CycleCondensed(t *testing.T) {
	// c1 and c2 supply each other; the cycle as a whole has no upstream,
	// so both members are terminal.
	g := buildTestGraph(t, []supply.EdgeRecord{
		{Source: "c1", Target: "c2", Tier: 3},
		{Source: "c2", Target: "c1", Tier: 3},
		{Source: "c1", Target: "a", Tier: 2},
		{Source: "a", Target: "s", Tier: 1},
	})

	terminals, err := TerminalNodes(g, "s")
	if err != nil {
		t.Fatalf("TerminalNodes failed: %v", err)
	}
	assertSet(t, terminals, "c1", "c2")
}

func TestTerminalNodes_CycleWithUpstreamNotTerminal(t *testing.T) {
	// A root above the cycle means the cycle's component has inbound
	// supply and must not count as terminal.
	g := buildTestGraph(t, []supply.EdgeRecord{
		{Source: "root", Target: "c1", Tier: 4},
		{Source: "c1", Target: "c2", Tier: 3},
		{Source: "c2", Target: "c1", Tier: 3},
		{Source: "c1", Target: "s", Tier: 1},
	})

	terminals, err := TerminalNodes(g, "s")
	if err != nil {
		t.Fatalf("TerminalNodes failed: %v", err)
	}
	assertSet(t, terminals, "root")
}

func TestTerminalNodes_SubsetOfReachable(t *testing.T) {
	g := buildTestGraph(t, []supply.EdgeRecord{
		{Source: "t1", Target: "a", Tier: 2},
		{Source: "t2", Target: "b", Tier: 2},
		{Source: "a", Target: "s", Tier: 1},
		{Source: "b", Target: "s", Tier: 1},
	})

	reachable, err := ReachableUpstream(g, "s")
	if err != nil {
		t.Fatalf("ReachableUpstream failed: %v", err)
	}
	terminals, err := TerminalNodes(g, "s")
	if err != nil {
		t.Fatalf("TerminalNodes failed: %v", err)
	}

	for id := range terminals {
		if !reachable.Has(id) {
			t.Errorf("Terminal %q not in reachable set", id)
		}
		if len(g.InSources(id)) != 0 {
			// All fixture terminals are literal roots here.
			t.Errorf("Terminal %q has upstream edges", id)
		}
	}
}

func TestTerminalNodes_Idempotent(t *testing.T) {
	g := buildTestGraph(t, []supply.EdgeRecord{
		{Source: "c1", Target: "c2", Tier: 3},
		{Source: "c2", Target: "c1", Tier: 3},
		{Source: "c1", Target: "a", Tier: 2},
		{Source: "a", Target: "s", Tier: 1},
	})

	first, err := TerminalNodes(g, "s")
	if err != nil {
		t.Fatalf("first TerminalNodes failed: %v", err)
	}
	second, err := TerminalNodes(g, "s")
	if err != nil {
		t.Fatalf("second TerminalNodes failed: %v", err)
	}

	if first.Len() != second.Len() {
		t.Fatalf("Sizes differ: %d vs %d", first.Len(), second.Len())
	}
	for id := range first {
		if !second.Has(id) {
			t.Errorf("Member %q missing on recomputation", id)
		}
	}
}
