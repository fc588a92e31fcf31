package score

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

func TestAnyTerminalReachable(t *testing.T) {
	metric := AnyTerminalReachable()
	if metric.Kind != KindBool {
		t.Errorf("Expected bool kind, got %q", metric.Kind)
	}

	terminals := supply.NewNodeSet("t1", "t2")

	v, err := metric.Eval(terminals, supply.NewNodeSet("x", "t2"))
	if err != nil || v != 1 {
		t.Errorf("Expected 1 with overlap, got %v (err %v)", v, err)
	}

	v, err = metric.Eval(terminals, supply.NewNodeSet("x", "y"))
	if err != nil || v != 0 {
		t.Errorf("Expected 0 without overlap, got %v (err %v)", v, err)
	}

	v, err = metric.Eval(terminals, supply.NewNodeSet())
	if err != nil || v != 0 {
		t.Errorf("Expected 0 for empty reachable set, got %v (err %v)", v, err)
	}
}

func TestFractionTerminalReachable(t *testing.T) {
	metric := FractionTerminalReachable()
	if metric.Kind != KindFloat {
		t.Errorf("Expected float kind, got %q", metric.Kind)
	}

	terminals := supply.NewNodeSet("t1", "t2", "t3", "t4")

	v, err := metric.Eval(terminals, supply.NewNodeSet("t1", "t3", "other"))
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if v != 0.5 {
		t.Errorf("Expected 0.5, got %v", v)
	}

	v, err = metric.Eval(terminals, terminals)
	if err != nil || v != 1 {
		t.Errorf("Expected 1 with full overlap, got %v (err %v)", v, err)
	}
}

func TestFractionTerminalReachable_EmptyTerminalSet(t *testing.T) {
	metric := FractionTerminalReachable()
	_, err := metric.Eval(supply.NewNodeSet(), supply.NewNodeSet("x"))
	if !errors.Is(err, supply.ErrEmptyTerminalSet) {
		t.Fatalf("Expected ErrEmptyTerminalSet, got %v", err)
	}
}

func TestDefaults_Labels(t *testing.T) {
	defaults := Defaults()
	if len(defaults) != 2 {
		t.Fatalf("Expected 2 default metrics, got %d", len(defaults))
	}
	seen := map[string]bool{}
	for _, m := range defaults {
		if m.Label == "" {
			t.Error("Metric missing label")
		}
		if seen[m.Label] {
			t.Errorf("Duplicate label %q", m.Label)
		}
		seen[m.Label] = true
	}
}
