package validate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

// SchemaEntry is one declared setting in a plugin's plugin.settings.json.
type SchemaEntry struct {
	Key          string                `json:"key"`
	Type         pluginapi.SettingType `json:"type"`
	DefaultValue interface{}           `json:"defaultValue"`
	IsSecret     bool                  `json:"isSecret"`
}

// LoadSchema reads and parses a settings schema file. Entries without an
// explicit type default to "string".
func LoadSchema(path string) ([]SchemaEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings schema: %w", err)
	}

	var schema []SchemaEntry
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse settings schema: %w", err)
	}

	for i := range schema {
		if schema[i].Type == "" {
			schema[i].Type = pluginapi.SettingString
		}
	}
	return schema, nil
}

// ValidateConfigWithSchema checks a configuration against the plugin's
// settings schema. It fails when the schema file is missing, a declared key
// is absent, a value's runtime type does not exactly match the declared type
// token, or the configuration carries a key the schema does not declare.
//
// Type matching is exact, not convertible: a string "30" is rejected where
// "int" is declared, and a floating value is rejected for "int".
func (v *Validator) ValidateConfigWithSchema(pluginName string, config map[string]interface{}, schemaPath string) error {
	schema, err := LoadSchema(schemaPath)
	if err != nil {
		return v.fail(pluginapi.NewFieldError(pluginName, "settings schema", err.Error()), "schema")
	}

	declared := make(map[string]pluginapi.SettingType, len(schema))
	for _, entry := range schema {
		declared[entry.Key] = entry.Type

		value, present := config[entry.Key]
		if !present {
			return v.fail(pluginapi.NewFieldError(pluginName, entry.Key, "required setting is missing"),
				"config")
		}
		if !typeMatches(entry.Type, value) {
			return v.fail(pluginapi.NewFieldError(pluginName, entry.Key,
				fmt.Sprintf("expected %s, got %T", entry.Type, value)), "config")
		}
	}

	for key := range config {
		if _, ok := declared[key]; !ok {
			return v.fail(pluginapi.NewFieldError(pluginName, key, "unexpected setting not declared in schema"),
				"config")
		}
	}

	return nil
}

// typeMatches reports whether a runtime value satisfies a schema type token.
func typeMatches(token pluginapi.SettingType, value interface{}) bool {
	switch token {
	case pluginapi.SettingString:
		_, ok := value.(string)
		return ok
	case pluginapi.SettingInt:
		switch value.(type) {
		case int, int32, int64:
			return true
		}
		return false
	case pluginapi.SettingBool:
		_, ok := value.(bool)
		return ok
	case pluginapi.SettingDouble:
		switch value.(type) {
		case float32, float64:
			return true
		}
		return false
	default:
		return false
	}
}

// SettingsFromConfig builds the ordered settings slice handed to a plugin's
// Initialize, following schema order. The configuration is assumed to have
// passed ValidateConfigWithSchema.
func SettingsFromConfig(config map[string]interface{}, schema []SchemaEntry) []pluginapi.Setting {
	settings := make([]pluginapi.Setting, 0, len(schema))
	for _, entry := range schema {
		settings = append(settings, pluginapi.Setting{
			Key:      entry.Key,
			Type:     entry.Type,
			Value:    config[entry.Key],
			IsSecret: entry.IsSecret,
		})
	}
	return settings
}
