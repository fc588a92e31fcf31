// Package commands wires the resilience engine into a CLI: sweep,
// compare-tiers, and thresholds subcommands over a cleaned CSV edge list.
package commands

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-resilience/pkg/config"
	"github.com/dd0wney/cluso-resilience/pkg/failure"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/parallel"
	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

var (
	cfgFile     string
	edgesPath   string
	metricsAddr string
	scaleFlag   string
	seedFlag    int64
)

var rootCmd = &cobra.Command{
	Use:   "resilience",
	Short: "Supply-chain resilience analysis",
	Long: `resilience estimates the structural resilience of a tiered
supply-chain network: how reachability of terminal suppliers degrades as
firms fail, how tier truncation distorts the estimate, and where individual
nodes break down.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (defaults match the reference study)")
	rootCmd.PersistentFlags().StringVar(&edgesPath, "edges", "", "cleaned CSV edge list (source, target, tier[, country/industry columns])")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	rootCmd.PersistentFlags().StringVar(&scaleFlag, "scale", "", "failure granularity override: firm, country, industry, country-industry")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "base random seed override (0 derives one from the clock)")
	rootCmd.MarkPersistentFlagRequired("edges")
}

// runContext is the shared setup of every subcommand: validated config,
// canonical graph, run-scoped logger, and started collaborators.
type runContext struct {
	cfg    config.Config
	graph  *supply.Graph
	log    logging.Logger
	pool   *parallel.Pool
	runID  string
	finish func()
}

func setupRun() (*runContext, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if scaleFlag != "" {
		cfg.FailureScale = scaleFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	runID := uuid.NewString()
	log := logging.DefaultLogger().With(logging.RunID(runID))

	records, err := loadEdgeList(edgesPath)
	if err != nil {
		return nil, err
	}
	graph, err := supply.Build(records)
	if err != nil {
		return nil, err
	}
	log.Info("graph built",
		logging.NodeCount(graph.NodeCount()),
		logging.EdgeCount(graph.EdgeCount()))

	registry := metrics.Default()
	registry.GraphNodes.Set(float64(graph.NodeCount()))
	registry.GraphEdges.Set(float64(graph.EdgeCount()))

	var pool *parallel.Pool
	if cfg.Parallel {
		if _, err := parallel.StartShared(cfg.Workers); err != nil {
			return nil, err
		}
		pool = parallel.Shared()
		log.Info("worker pool started", logging.Int("workers", pool.Workers()))
	}

	var srv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", registry.Handler())
		srv = &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn("metrics listener stopped", logging.Error(err))
			}
		}()
		log.Info("metrics listener started", logging.String("addr", metricsAddr))
	}

	return &runContext{
		cfg:   cfg,
		graph: graph,
		log:   log,
		pool:  pool,
		runID: runID,
		finish: func() {
			if cfg.Parallel {
				parallel.StopShared()
			}
			if srv != nil {
				srv.Close()
			}
		},
	}, nil
}

// writeCSV writes a table through the given writer func to path.
func writeCSV(path string, log logging.Logger, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	log.Info("results written", logging.String("path", path))
	return nil
}

func scaleOf(cfg config.Config) failure.Scale {
	return failure.Scale(cfg.FailureScale)
}
