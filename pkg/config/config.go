// Package config loads the host-side configuration for the plugin
// subsystem from environment variables, with an optional YAML file as the
// base layer.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds plugin subsystem configuration.
type Config struct {
	// PluginRoot is the directory whose subdirectories hold plugins.
	PluginRoot string `yaml:"pluginRoot"`

	// SkipLibraries seeds the process-wide skip-list: dependency file
	// names exempted from native-library and identity checks.
	SkipLibraries []string `yaml:"skipLibraries"`

	// SharedLibraryDir, when set, is scanned into the shared resolver so
	// framework libraries resolve outside plugin boundaries.
	SharedLibraryDir string `yaml:"sharedLibraryDir"`

	LogLevel       string `yaml:"logLevel"`
	MetricsEnabled bool   `yaml:"metricsEnabled"`
	WatchEnabled   bool   `yaml:"watchEnabled"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		PluginRoot:     "./plugins",
		LogLevel:       "info",
		MetricsEnabled: true,
	}
}

// Load builds configuration from defaults plus environment variables.
func Load() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFile builds configuration from defaults, a YAML file, then
// environment variables — later layers win.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if root := os.Getenv("SCRIPTRUNNER_PLUGIN_ROOT"); root != "" {
		c.PluginRoot = root
	}
	if skip := os.Getenv("SCRIPTRUNNER_SKIP_LIBRARIES"); skip != "" {
		c.SkipLibraries = splitList(skip)
	}
	if shared := os.Getenv("SCRIPTRUNNER_SHARED_LIBRARY_DIR"); shared != "" {
		c.SharedLibraryDir = shared
	}
	if level := os.Getenv("SCRIPTRUNNER_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if metrics := os.Getenv("SCRIPTRUNNER_METRICS_ENABLED"); metrics != "" {
		c.MetricsEnabled = isTrue(metrics)
	}
	if watch := os.Getenv("SCRIPTRUNNER_WATCH_ENABLED"); watch != "" {
		c.WatchEnabled = isTrue(watch)
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.PluginRoot == "" {
		return fmt.Errorf("plugin root is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isTrue(value string) bool {
	return strings.ToLower(value) == "true" || value == "1"
}
