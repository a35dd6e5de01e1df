package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptrunner/pluginsdk/pkg/observability"
	"github.com/scriptrunner/pluginsdk/pkg/validate"
)

func newValidateConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-config <plugin-name> <config.json> <schema.json>",
		Short: "Check a plugin configuration file against its settings schema",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			log := observability.NewLogger(level)

			config, err := readConfigFile(args[1])
			if err != nil {
				return err
			}

			if err := validate.New(log).ValidateConfigWithSchema(args[0], config, args[2]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}
	return cmd
}

// readConfigFile parses a JSON settings file, keeping whole numbers as ints
// so typed schema checks see them the way plugin code would.
func readConfigFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		config[key] = normalizeValue(value)
	}
	return config, nil
}

func normalizeValue(value interface{}) interface{} {
	num, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := num.Int64(); err == nil {
		return int(i)
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}
