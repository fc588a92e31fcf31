package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-resilience/pkg/failure"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/sweep"
)

var (
	sweepRepeats int
	sweepOut     string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a failure-reachability sweep at the configured granularity",
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := setupRun()
		if err != nil {
			return err
		}
		defer run.finish()

		scale := scaleOf(run.cfg)
		repeats := sweepRepeats
		if repeats <= 0 {
			repeats = run.cfg.Repeats
		}

		timer := logging.StartTimer(run.log, "sweep finished",
			logging.Scale(string(scale)), logging.Repeat(repeats))

		runner := sweep.Runner{
			Rhos:     sweep.Linspace(run.cfg.RhoMin, run.cfg.RhoMax, run.cfg.RhoSteps),
			Repeats:  repeats,
			Scale:    scale,
			Factory:  failure.RandomKeepFactory(scale),
			Seed:     run.cfg.Seed,
			Pool:     run.pool,
			Logger:   run.log,
			Registry: metrics.Default(),
		}
		table, err := runner.Run(run.graph)
		if err != nil {
			timer.EndError(err)
			return err
		}
		timer.End()

		out := sweepOut
		if out == "" {
			out = fmt.Sprintf("sweep_%s_random.csv", scale)
		}
		return writeCSV(out, run.log, func(f *os.File) error {
			return table.WriteCSV(f)
		})
	},
}

func init() {
	sweepCmd.Flags().IntVar(&sweepRepeats, "repeats", 0, "Monte-Carlo trials (default from config)")
	sweepCmd.Flags().StringVar(&sweepOut, "out", "", "output CSV path")
	rootCmd.AddCommand(sweepCmd)
}
