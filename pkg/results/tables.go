// Package results defines the in-memory tables the engine produces: sweep
// rows, tier-distance rows, and breakdown-threshold matrices. The engine's
// contract ends here; persistence beyond CSV export belongs to external
// collaborators.
package results

import "sort"

// SweepRow is one observation of a thinned graph: the remaining keep-fraction,
// the per-metric averages across demand nodes, and the labels identifying how
// the failure was injected. TierCount is only set by tier comparisons.
type SweepRow struct {
	Remaining  float64
	Values     map[string]float64
	Scale      string
	AttackType string
	TierCount  int
	Repeat     int
}

// SweepTable accumulates sweep rows. MetricLabels fixes the column order;
// RemainingLabel names the keep-fraction column per granularity ("Percent
// firms remaining", ...).
type SweepTable struct {
	RemainingLabel string
	MetricLabels   []string
	HasTierCounts  bool
	Rows           []SweepRow
}

// NewSweepTable creates an empty table with the given column layout.
func NewSweepTable(remainingLabel string, metricLabels []string) *SweepTable {
	return &SweepTable{
		RemainingLabel: remainingLabel,
		MetricLabels:   metricLabels,
	}
}

// Append adds one row.
func (t *SweepTable) Append(row SweepRow) {
	t.Rows = append(t.Rows, row)
}

// Concat appends every row of other. Column layout follows the receiver.
func (t *SweepTable) Concat(other *SweepTable) {
	t.Rows = append(t.Rows, other.Rows...)
	t.HasTierCounts = t.HasTierCounts || other.HasTierCounts
}

// MeanCurve averages a metric over rows grouped by remaining fraction,
// restricted to the given tier count (ignored when the table carries none).
// The returned points are sorted by remaining fraction.
func (t *SweepTable) MeanCurve(metricLabel string, tierCount int) []CurvePoint {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, row := range t.Rows {
		if t.HasTierCounts && row.TierCount != tierCount {
			continue
		}
		v, ok := row.Values[metricLabel]
		if !ok {
			continue
		}
		sums[row.Remaining] += v
		counts[row.Remaining]++
	}

	points := make([]CurvePoint, 0, len(sums))
	for r, sum := range sums {
		points = append(points, CurvePoint{Remaining: r, Value: sum / float64(counts[r])})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Remaining < points[j].Remaining })
	return points
}

// TierCounts returns the distinct tier counts present, ascending.
func (t *SweepTable) TierCounts() []int {
	seen := make(map[int]struct{})
	for _, row := range t.Rows {
		seen[row.TierCount] = struct{}{}
	}
	counts := make([]int, 0, len(seen))
	for c := range seen {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}

// CurvePoint is one (remaining fraction, mean metric value) pair.
type CurvePoint struct {
	Remaining float64
	Value     float64
}

// TierDistance is the uniform distance between one tier count's mean curve
// and the full-depth baseline.
type TierDistance struct {
	TierCount int
	Distance  float64
}

// DistanceTable holds one TierDistance per tier count.
type DistanceTable struct {
	Rows []TierDistance
}

// ThresholdTable is a breakdown-threshold matrix: one row per focal node, one
// column per repeat, each cell the cumulative deletion count at collapse.
type ThresholdTable struct {
	NodeIDs []string
	Repeats int
	Cells   map[string][]int
}

// NewThresholdTable allocates a matrix for the given nodes and repeat count.
func NewThresholdTable(nodeIDs []string, repeats int) *ThresholdTable {
	cells := make(map[string][]int, len(nodeIDs))
	for _, id := range nodeIDs {
		cells[id] = make([]int, repeats)
	}
	return &ThresholdTable{
		NodeIDs: append([]string(nil), nodeIDs...),
		Repeats: repeats,
		Cells:   cells,
	}
}

// Set records one observation.
func (t *ThresholdTable) Set(nodeID string, repeat, deleted int) {
	if row, ok := t.Cells[nodeID]; ok && repeat >= 0 && repeat < len(row) {
		row[repeat] = deleted
	}
}
