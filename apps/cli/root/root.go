package root

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the tidenote admin CLI. Subcommands (seed, token) are attached here.
var rootCmd = &cobra.Command{
	Use:           "tidenote",
	Short:         "Tidenote admin CLI",
	Long:          "Administrative utilities for Tidenote (demo seed data, dev tokens).",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
