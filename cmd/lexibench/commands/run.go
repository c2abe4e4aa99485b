package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexidex/lexidex/internal/config"
	"github.com/lexidex/lexidex/internal/repository/benchhist"
	benchmarkuc "github.com/lexidex/lexidex/internal/usecase/benchmark"
)

// NewRunCmd constructs the "run" subcommand: execute the automated benchmark
// over the canned corpus and print a per-adapter comparison.
func NewRunCmd() *cobra.Command {
	var (
		adapterNames []string
		archivePath  string
		noHistory    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the retrieval benchmark suite across adapters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			adapters := buildAdapters(cfg.Retrieval.Adapters)

			opts := []benchmarkuc.AutomatedOption{
				benchmarkuc.WithHistoryLimit(cfg.Benchmark.HistoryLimit),
			}
			path := archivePath
			if path == "" {
				path = cfg.Benchmark.ArchivePath
			}
			if path != "" {
				store, err := benchhist.Open(path)
				if err != nil {
					return fmt.Errorf("open archive: %w", err)
				}
				defer func() { _ = store.Close() }()
				opts = append(opts, benchmarkuc.WithArchive(store))
			}

			runner := benchmarkuc.NewAutomatedRunner(adapters, zap.NewNop(), opts...)
			summary := runner.RunAll(cmd.Context(), benchmarkuc.DefaultCases(), adapterNames, !noHistory)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ADAPTER\tPRECISION\tRECALL\tDURATION (MS)")
			for _, run := range summary.Runs {
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.2f\n",
					run.Adapter, run.Suite.MacroPrecision, run.Suite.MacroRecall, run.DurationMS)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flush output: %w", err)
			}

			fmt.Printf("\nmacro precision: %.4f  macro recall: %.4f  (%d adapters, %d cases)\n",
				summary.MacroPrecision, summary.MacroRecall,
				len(summary.Runs), len(benchmarkuc.DefaultCases()))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&adapterNames, "adapters", nil, "Adapter names to run (default: all configured)")
	cmd.Flags().StringVar(&archivePath, "archive", "", "SQLite archive path (overrides config)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip in-memory history tracking")

	return cmd
}

// loadConfig resolves the config environment from the --env flag or ENV.
func loadConfig() (config.Config, error) {
	e := env
	if e == "" {
		e = config.GetEnv()
	}
	cfg, err := config.Load(e)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildAdapters maps configured adapter entries to engine factories, falling
// back to the stock set when none are configured.
func buildAdapters(entries []config.AdapterConfig) map[string]benchmarkuc.EngineFactory {
	if len(entries) == 0 {
		return benchmarkuc.DefaultAdapters()
	}
	adapters := make(map[string]benchmarkuc.EngineFactory, len(entries))
	for _, e := range entries {
		adapters[e.Name] = benchmarkuc.NewEngineFactory(e.TagBoost, e.SourceBoost)
	}
	return adapters
}
