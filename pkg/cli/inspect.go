package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptrunner/pluginsdk/pkg/inspect"
	"github.com/scriptrunner/pluginsdk/pkg/observability"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <module-file>",
		Short: "Read embedded plugin metadata from a module file without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			log := observability.NewLogger(level)

			if inspect.IsNativeLibrary(args[0]) {
				return fmt.Errorf("%s is a native library, not a plugin module", args[0])
			}

			meta, err := inspect.NewInspector(log).Metadata(args[0])
			if err != nil {
				return err
			}
			if meta == nil {
				return fmt.Errorf("no plugin metadata found in %s", args[0])
			}

			out, err := json.MarshalIndent(meta, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render metadata: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	return cmd
}
