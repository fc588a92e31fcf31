package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-resilience/pkg/failure"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/sweep"
	"github.com/dd0wney/cluso-resilience/pkg/tiers"
)

var (
	compareOut    string
	distancesOut  string
	compareTiersN int
)

var compareCmd = &cobra.Command{
	Use:   "compare-tiers",
	Short: "Compare reachability curves across shrinking tier depths",
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := setupRun()
		if err != nil {
			return err
		}
		defer run.finish()

		scale := scaleOf(run.cfg)
		maxTiers := compareTiersN
		if maxTiers <= 0 {
			maxTiers = run.cfg.MaxTiers
		}

		timer := logging.StartTimer(run.log, "tier comparison finished",
			logging.Scale(string(scale)), logging.TierCount(maxTiers))

		comparator := tiers.Comparator{
			MaxTiers: maxTiers,
			Rhos:     sweep.Linspace(run.cfg.RhoMin, run.cfg.RhoMax, run.cfg.RhoSteps),
			Repeats:  run.cfg.Repeats,
			Scale:    scale,
			Factory:  failure.RandomKeepFactory(scale),
			Seed:     run.cfg.Seed,
			Pool:     run.pool,
			Logger:   run.log,
			Registry: metrics.Default(),
		}
		table, err := comparator.Compare(run.graph)
		if err != nil {
			timer.EndError(err)
			return err
		}
		timer.End()

		distances := tiers.BetweenTierDistances(table)
		for _, row := range distances.Rows {
			run.log.Info("tier distance",
				logging.TierCount(row.TierCount),
				logging.Float64("distance", row.Distance))
		}

		out := compareOut
		if out == "" {
			out = fmt.Sprintf("compare_tiers_%s_random.csv", scale)
		}
		if err := writeCSV(out, run.log, func(f *os.File) error {
			return table.WriteCSV(f)
		}); err != nil {
			return err
		}

		dout := distancesOut
		if dout == "" {
			dout = fmt.Sprintf("between_tier_distances_%s_random.csv", scale)
		}
		return writeCSV(dout, run.log, func(f *os.File) error {
			return distances.WriteCSV(f)
		})
	},
}

func init() {
	compareCmd.Flags().IntVar(&compareTiersN, "max-tiers", 0, "deepest tier cutoff (default from config)")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "combined sweep CSV path")
	compareCmd.Flags().StringVar(&distancesOut, "distances-out", "", "distance table CSV path")
	rootCmd.AddCommand(compareCmd)
}
