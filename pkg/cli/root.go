// Package cli implements the scriptrunner-plugins command line tool.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "scriptrunner-plugins",
		Short:         "Inspect and validate ScriptRunner plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newScanCommand())
	root.AddCommand(newInspectCommand())
	root.AddCommand(newValidateConfigCommand())

	return root
}
