package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lexidex/lexidex/internal/config"
)

// NewAdaptersCmd constructs the "adapters" subcommand: list the adapter
// configurations the benchmark would compare.
func NewAdaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List configured benchmark adapters",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			entries := cfg.Retrieval.Adapters
			if len(entries) == 0 {
				// Mirror the stock set used when config names none.
				entries = []config.AdapterConfig{
					{Name: "baseline_bow"},
					{Name: "tag_bias", TagBoost: 0.2},
					{Name: "source_bias", SourceBoost: 0.05},
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTAG BOOST\tSOURCE BOOST")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", e.Name, e.TagBoost, e.SourceBoost)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flush output: %w", err)
			}
			return nil
		},
	}
}
