// Package commands defines the Cobra CLI commands for the lexibench binary.
package commands

import (
	"github.com/spf13/cobra"
)

// env holds the --env flag value selecting the config environment.
var env string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lexibench",
		Short: "Offline retrieval benchmark runner for lexidex",
		Long: `lexibench runs the lexidex retrieval benchmark suite from the command
line, comparing adapter configurations without starting the API server.

Configuration is read from config/<env>.yaml, matching the server. Results
can optionally be archived to the same SQLite history database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&env, "env", "", "Config environment (default: ENV variable or \"local\")")

	root.AddCommand(
		NewRunCmd(),
		NewAdaptersCmd(),
		NewVersionCmd(),
	)

	return root
}
