package failure

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// randomGraph builds a graph over a small node universe so generated cases
// carry parallel paths and whole categories.
func randomGraph(vals []int) *supply.Graph {
	if len(vals) < 3 {
		return nil
	}
	countries := []string{"DE", "JP", "US"}
	industries := []string{"Auto", "Chem", "Semi"}

	var records []supply.EdgeRecord
	for i := 0; i+2 < len(vals); i += 3 {
		src := vals[i] % 10
		dst := vals[i+1] % 10
		if src == dst {
			continue
		}
		records = append(records, supply.EdgeRecord{
			Source:         fmt.Sprintf("n%02d", src),
			Target:         fmt.Sprintf("n%02d", dst),
			Tier:           vals[i+2]%3 + 1,
			SourceCountry:  countries[src%len(countries)],
			TargetCountry:  countries[dst%len(countries)],
			SourceIndustry: industries[src%len(industries)],
			TargetIndustry: industries[dst%len(industries)],
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

func subsetOf(small, large *supply.Graph) bool {
	for _, id := range small.NodeIDs() {
		if !large.HasNode(id) {
			return false
		}
	}
	return true
}

func TestThinningInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	edgeGen := gen.SliceOfN(24, gen.IntRange(0, 1000))
	scaleGen := gen.OneConstOf(ScaleFirm, ScaleCountry, ScaleIndustry, ScaleCountryIndustry)

	properties.Property("kept node set is monotone in rho within a trial", prop.ForAll(
		func(vals []int, scale Scale, seed int64, a, b float64) bool {
			g := randomGraph(vals)
			if g == nil {
				return true
			}
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			strategy := NewRandomKeep(g, rand.New(rand.NewSource(seed)), scale)
			return subsetOf(strategy.Thin(lo), strategy.Thin(hi))
		},
		edgeGen,
		scaleGen,
		gen.Int64(),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("rho of one keeps the whole graph", prop.ForAll(
		func(vals []int, scale Scale, seed int64) bool {
			g := randomGraph(vals)
			if g == nil {
				return true
			}
			strategy := NewRandomKeep(g, rand.New(rand.NewSource(seed)), scale)
			thinned := strategy.Thin(1.0)
			return thinned.NodeCount() == g.NodeCount() && thinned.EdgeCount() == g.EdgeCount()
		},
		edgeGen,
		scaleGen,
		gen.Int64(),
	))

	properties.Property("thinning never mutates the source graph", prop.ForAll(
		func(vals []int, scale Scale, seed int64, rho float64) bool {
			g := randomGraph(vals)
			if g == nil {
				return true
			}
			nodes, edges := g.NodeCount(), g.EdgeCount()
			NewRandomKeep(g, rand.New(rand.NewSource(seed)), scale).Thin(rho)
			return g.NodeCount() == nodes && g.EdgeCount() == edges
		},
		edgeGen,
		scaleGen,
		gen.Int64(),
		gen.Float64Range(0, 1),
	))

	properties.Property("incremental deletion exhausts the working copy", prop.ForAll(
		func(vals []int, seed int64, ratio float64) bool {
			g := randomGraph(vals)
			if g == nil {
				return true
			}
			inc := NewIncremental(g, rand.New(rand.NewSource(seed)), ratio)
			total := 0
			for {
				deleted := inc.DeleteBatch()
				if deleted == 0 {
					break
				}
				if deleted > int(math.Ceil(ratio*float64(g.NodeCount()))) {
					return false
				}
				total += deleted
			}
			return total == g.NodeCount() && inc.Deleted() == total && inc.Graph().NodeCount() == 0
		},
		edgeGen,
		gen.Int64(),
		gen.Float64Range(0.01, 0.5),
	))

	properties.TestingRun(t)
}
