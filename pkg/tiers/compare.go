// Package tiers measures how truncating the supply network's tier depth
// distorts resilience estimates: it reruns the reachability sweep on
// progressively tier-reduced graphs and compares each mean curve to the
// full-depth baseline.
package tiers

import (
	"errors"
	"math"

	"github.com/dd0wney/cluso-resilience/pkg/failure"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/parallel"
	"github.com/dd0wney/cluso-resilience/pkg/results"
	"github.com/dd0wney/cluso-resilience/pkg/score"
	"github.com/dd0wney/cluso-resilience/pkg/supply"
	"github.com/dd0wney/cluso-resilience/pkg/sweep"
)

// Comparator reruns sweeps across a descending sequence of tier cutoffs.
type Comparator struct {
	MaxTiers int
	Rhos     []float64
	Repeats  int
	Scale    failure.Scale
	Factory  failure.Factory
	Seed     int64
	Pool     *parallel.Pool
	Logger   logging.Logger
	Registry *metrics.Registry
}

// Compare iterates tier cutoffs from MaxTiers down to 1. Each step truncates
// the previous step's graph (the original graph is never mutated), runs the
// sweep with the fraction-reachable metric only, and tags every row with the
// tier count. Returns the combined table across all cutoffs.
func (c *Comparator) Compare(g *supply.Graph) (*results.SweepTable, error) {
	if g == nil {
		return nil, supply.ErrNilGraph
	}
	if c.MaxTiers < 1 {
		return nil, errors.New("max tiers must be at least 1")
	}
	log := c.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	registry := c.Registry
	if registry == nil {
		registry = metrics.Default()
	}

	fraction := score.FractionTerminalReachable()
	combined := results.NewSweepTable(sweep.RemainingLabel(c.Scale), []string{fraction.Label})
	combined.HasTierCounts = true

	working := g
	for tier := c.MaxTiers; tier >= 1; tier-- {
		reduced, err := supply.ReduceTiers(working, tier)
		if err != nil {
			return nil, err
		}
		working = reduced
		registry.TierReductionsTotal.Inc()

		log.Info("comparing tier cutoff",
			logging.TierCount(tier),
			logging.NodeCount(working.NodeCount()),
			logging.EdgeCount(working.EdgeCount()))

		runner := sweep.Runner{
			Rhos:    c.Rhos,
			Repeats: c.Repeats,
			Scale:   c.Scale,
			Scorers: []score.Metric{fraction},
			Factory: c.Factory,
			// Separate the seed space per cutoff so trial k at one
			// tier count never shares draws with trial k at another.
			Seed:     c.Seed + int64(tier)<<32,
			Pool:     c.Pool,
			Logger:   log,
			Registry: registry,
		}
		table, err := runner.Run(working)
		if err != nil {
			return nil, err
		}

		for _, row := range table.Rows {
			row.TierCount = tier
			combined.Append(row)
		}
	}

	return combined, nil
}

// BetweenTierDistances computes, for every tier count in the table, the
// uniform (maximum absolute pointwise) distance between its mean metric
// curve over rho and the curve of the maximum tier count.
func BetweenTierDistances(table *results.SweepTable) *results.DistanceTable {
	if table == nil || len(table.MetricLabels) == 0 {
		return &results.DistanceTable{}
	}
	label := table.MetricLabels[0]

	counts := table.TierCounts()
	if len(counts) == 0 {
		return &results.DistanceTable{}
	}
	baseline := table.MeanCurve(label, counts[len(counts)-1])

	dist := &results.DistanceTable{}
	for _, tier := range counts {
		curve := table.MeanCurve(label, tier)
		dist.Rows = append(dist.Rows, results.TierDistance{
			TierCount: tier,
			Distance:  uniformDistance(curve, baseline),
		})
	}
	return dist
}

// uniformDistance is the maximum absolute difference between two curves
// sampled on the same rho grid.
func uniformDistance(a, b []results.CurvePoint) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	max := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(a[i].Value - b[i].Value); d > max {
			max = d
		}
	}
	return max
}
