package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-resilience/pkg/breakdown"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
)

var thresholdsOut string

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Search breakdown thresholds for well-connected tier-0 nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := setupRun()
		if err != nil {
			return err
		}
		defer run.finish()

		candidates, err := breakdown.Candidates(run.graph, run.cfg.ReachableNodeThreshold)
		if err != nil {
			return err
		}
		run.log.Info("breakdown candidates selected",
			logging.Int("candidates", len(candidates)),
			logging.Int("min_reachable", run.cfg.ReachableNodeThreshold))
		if len(candidates) == 0 {
			return fmt.Errorf("no tier-0 node reaches %d upstream nodes", run.cfg.ReachableNodeThreshold)
		}

		searcher := breakdown.Searcher{
			Threshold:     run.cfg.BreakdownThreshold,
			ThinningRatio: run.cfg.ThinningRatio,
			Logger:        run.log,
			Registry:      metrics.Default(),
		}

		timer := logging.StartTimer(run.log, "threshold search finished",
			logging.Int("candidates", len(candidates)),
			logging.Repeat(run.cfg.RepeatsPerNode))
		table, err := searcher.Thresholds(run.graph, candidates, run.cfg.RepeatsPerNode, run.cfg.Seed, run.pool)
		if err != nil {
			timer.EndError(err)
			return err
		}
		timer.End()

		out := thresholdsOut
		if out == "" {
			out = fmt.Sprintf("breakdown_thresholds_%.2f_%.3f.csv",
				run.cfg.BreakdownThreshold, run.cfg.ThinningRatio)
		}
		return writeCSV(out, run.log, func(f *os.File) error {
			return table.WriteCSV(f)
		})
	},
}

func init() {
	thresholdsCmd.Flags().StringVar(&thresholdsOut, "out", "", "output CSV path")
	rootCmd.AddCommand(thresholdsCmd)
}
