// Package score holds the pure metrics that grade a demand node's post-failure
// state against its precomputed terminal-supplier set.
package score

import (
	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// Kind tags a metric's output type; it is used only for result-table column
// semantics, never for dispatch.
type Kind string

const (
	KindBool  Kind = "bool"
	KindFloat Kind = "float"
)

// Metric is a registered, side-effect-free scoring function. Eval receives
// the terminal set t computed on the canonical graph and the upstream-
// reachable set u computed on the thinned graph (empty when the node was
// deleted), and returns a value in [0, 1].
type Metric struct {
	Label string
	Kind  Kind
	Eval  func(t, u supply.NodeSet) (float64, error)
}

// AnyTerminalReachable scores 1 iff at least one terminal supplier is still
// reachable (t and u intersect).
func AnyTerminalReachable() Metric {
	return Metric{
		Label: "Some end suppliers reachable",
		Kind:  KindBool,
		Eval: func(t, u supply.NodeSet) (float64, error) {
			if t.Intersects(u) {
				return 1, nil
			}
			return 0, nil
		},
	}
}

// FractionTerminalReachable scores |t ∩ u| / |t|. An empty terminal set
// yields ErrEmptyTerminalSet; callers must exclude such nodes from the metric
// rather than let the division surface.
func FractionTerminalReachable() Metric {
	return Metric{
		Label: "Avg. percent end suppliers reachable",
		Kind:  KindFloat,
		Eval: func(t, u supply.NodeSet) (float64, error) {
			if t.Len() == 0 {
				return 0, supply.ErrEmptyTerminalSet
			}
			return float64(t.IntersectCount(u)) / float64(t.Len()), nil
		},
	}
}

// Defaults returns the standard metric pair evaluated by sweeps.
func Defaults() []Metric {
	return []Metric{AnyTerminalReachable(), FractionTerminalReachable()}
}
