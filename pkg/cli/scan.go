package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptrunner/pluginsdk/pkg/observability"
	"github.com/scriptrunner/pluginsdk/pkg/tracker"
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <plugin-root>",
		Short: "Discover plugins under a root directory and list tracked dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			log := observability.NewLogger(level)

			t := tracker.New(args[0], log)
			if err := t.DiscoverAndTrackPlugins(); err != nil {
				return err
			}

			plugins := t.PluginPaths()
			fmt.Fprintf(cmd.OutOrStdout(), "Plugins (%d):\n", len(plugins))
			for _, p := range plugins {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-24s %s\n", p.Name, p.Path)
			}

			deps := t.TrackedDependencies()
			fmt.Fprintf(cmd.OutOrStdout(), "Dependencies (%d):\n", len(deps))
			for _, d := range deps {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d.FileName)
			}
			return nil
		},
	}
	return cmd
}
