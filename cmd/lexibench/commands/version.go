package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexidex/lexidex/internal/version"
)

// NewVersionCmd constructs the "version" subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("lexibench %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
