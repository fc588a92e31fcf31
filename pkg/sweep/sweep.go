// Package sweep runs Monte-Carlo failure-reachability sweeps: for each keep
// fraction it produces one thinned subgraph, scores every demand node against
// its precomputed terminal-supplier set, and averages each metric across
// demand nodes. Repeats are independent trials with their own random draws.
package sweep

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-resilience/pkg/failure"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/parallel"
	"github.com/dd0wney/cluso-resilience/pkg/reach"
	"github.com/dd0wney/cluso-resilience/pkg/results"
	"github.com/dd0wney/cluso-resilience/pkg/score"
	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// Runner configures a failure-reachability sweep over one graph snapshot.
type Runner struct {
	Rhos    []float64
	Repeats int
	Scale   failure.Scale
	Scorers []score.Metric
	Factory failure.Factory

	// Demand overrides the tier-1 demand set when non-nil.
	Demand []string

	// Seed is the base for per-repeat random sources: repeat k uses
	// Seed + k, so trials are independent but reproducible.
	Seed int64

	// Pool enables parallel repeats; nil runs them sequentially.
	Pool *parallel.Pool

	Logger   logging.Logger
	Registry *metrics.Registry
}

// Linspace returns n evenly spaced values from start to end inclusive.
func Linspace(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}
	vals := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	vals[n-1] = end
	return vals
}

// RemainingLabel names the keep-fraction column for a granularity.
func RemainingLabel(scale failure.Scale) string {
	return "Percent " + scale.Plural() + " remaining"
}

func (r *Runner) defaults() *Runner {
	run := *r
	if run.Repeats <= 0 {
		run.Repeats = 1
	}
	if len(run.Scorers) == 0 {
		run.Scorers = score.Defaults()
	}
	if run.Factory == nil {
		run.Factory = failure.RandomKeepFactory(run.Scale)
	}
	if run.Logger == nil {
		run.Logger = logging.NewNopLogger()
	}
	if run.Registry == nil {
		run.Registry = metrics.Default()
	}
	return &run
}

// Run executes the configured sweep against the graph and returns one row per
// (rho, repeat) pair. The graph itself is never mutated; every trial thins a
// private copy.
func (r *Runner) Run(g *supply.Graph) (*results.SweepTable, error) {
	if g == nil {
		return nil, supply.ErrNilGraph
	}
	if !r.Scale.Valid() {
		return nil, fmt.Errorf("unknown failure scale %q", r.Scale)
	}
	if len(r.Rhos) == 0 {
		return nil, errors.New("rho sequence is empty")
	}
	run := r.defaults()

	demand := run.Demand
	if demand == nil {
		demand = reach.DemandNodes(g)
	}

	// Terminal sets are computed once per graph snapshot and shared by
	// every trial; they are immutable until the canonical graph changes.
	terminals := make([]supply.NodeSet, len(demand))
	for i, id := range demand {
		t, err := reach.TerminalNodes(g, id)
		if err != nil {
			return nil, fmt.Errorf("terminal set for %q: %w", id, err)
		}
		terminals[i] = t
	}

	labels := make([]string, len(run.Scorers))
	for i, m := range run.Scorers {
		labels[i] = m.Label
	}

	run.Logger.Debug("starting sweep",
		logging.Scale(string(run.Scale)),
		logging.Int("rhos", len(run.Rhos)),
		logging.Repeat(run.Repeats),
		logging.Int("demand_nodes", len(demand)))

	repeats := make([]int, run.Repeats)
	for i := range repeats {
		repeats[i] = i
	}
	tables, err := parallel.Map(run.Pool, repeats, func(k int) *results.SweepTable {
		return run.sweepOnce(g, demand, terminals, labels, k)
	})
	if err != nil {
		return nil, err
	}

	table := results.NewSweepTable(RemainingLabel(run.Scale), labels)
	for _, t := range tables {
		table.Concat(t)
	}
	return table, nil
}

// sweepOnce runs one independent trial: fresh draws, one thinned graph per
// rho, averaged metric values per row.
func (r *Runner) sweepOnce(g *supply.Graph, demand []string, terminals []supply.NodeSet, labels []string, repeat int) *results.SweepTable {
	start := time.Now()
	rng := rand.New(rand.NewSource(r.Seed + int64(repeat)))

	trial := g
	if r.Scale == failure.ScaleIndustry || r.Scale == failure.ScaleCountryIndustry {
		trial = g.Clone()
		if err := supply.ImputeIndustries(trial, rng); err != nil {
			r.Logger.Warn("industry imputation skipped", logging.Error(err))
		}
	}

	strategy := r.Factory(trial, rng)
	table := results.NewSweepTable(RemainingLabel(r.Scale), labels)

	for _, rho := range r.Rhos {
		thin := strategy.Thin(rho)
		r.Registry.TrialsTotal.WithLabelValues(string(r.Scale)).Inc()

		row := results.SweepRow{
			Remaining:  rho,
			Values:     make(map[string]float64, len(r.Scorers)),
			Scale:      string(r.Scale),
			AttackType: strategy.Description(),
			Repeat:     repeat,
		}
		for m, metric := range r.Scorers {
			row.Values[labels[m]] = r.averageMetric(metric, thin, demand, terminals)
		}
		table.Append(row)
		r.Logger.Debug("thinned subgraph scored",
			logging.Rho(rho),
			logging.Repeat(repeat),
			logging.NodeCount(thin.NodeCount()))
	}

	r.Registry.SweepsTotal.WithLabelValues(string(r.Scale), strategy.Description()).Inc()
	r.Registry.SweepDuration.WithLabelValues(string(r.Scale)).Observe(time.Since(start).Seconds())
	r.Logger.Debug("sweep trial finished",
		logging.Repeat(repeat),
		logging.Latency(time.Since(start)))
	return table
}

// averageMetric scores one metric for every demand node on the thinned graph
// and returns the mean. A demand node deleted by the thinning contributes an
// empty reachable set; a node whose terminal set is empty is excluded from
// the average. With no contributing nodes the average degrades to 0.
func (r *Runner) averageMetric(metric score.Metric, thin *supply.Graph, demand []string, terminals []supply.NodeSet) float64 {
	sum := 0.0
	n := 0
	for i, id := range demand {
		u, err := reach.ReachableUpstream(thin, id)
		if err != nil {
			if !errors.Is(err, supply.ErrNodeNotFound) {
				r.Logger.Warn("reachability failed", logging.NodeID(id), logging.Error(err))
				continue
			}
			u = supply.NewNodeSet() // deleted by the thinning
		}
		v, err := metric.Eval(terminals[i], u)
		if err != nil {
			if !errors.Is(err, supply.ErrEmptyTerminalSet) {
				r.Logger.Warn("metric failed", logging.NodeID(id), logging.Error(err))
			}
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
