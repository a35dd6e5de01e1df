package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "./plugins", cfg.PluginRoot)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.WatchEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCRIPTRUNNER_PLUGIN_ROOT", "/opt/plugins")
	t.Setenv("SCRIPTRUNNER_SKIP_LIBRARIES", "libfoo.so, libbar.so ,")
	t.Setenv("SCRIPTRUNNER_LOG_LEVEL", "debug")
	t.Setenv("SCRIPTRUNNER_METRICS_ENABLED", "false")
	t.Setenv("SCRIPTRUNNER_WATCH_ENABLED", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/plugins", cfg.PluginRoot)
	assert.Equal(t, []string{"libfoo.so", "libbar.so"}, cfg.SkipLibraries)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.WatchEnabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
pluginRoot: /srv/plugins
skipLibraries:
  - libcommon.so
logLevel: warn
metricsEnabled: false
watchEnabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/plugins", cfg.PluginRoot)
	assert.Equal(t, []string{"libcommon.so"}, cfg.SkipLibraries)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.WatchEnabled)
}

func TestLoadFile_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pluginRoot: /from/file\n"), 0o644))

	t.Setenv("SCRIPTRUNNER_PLUGIN_ROOT", "/from/env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.PluginRoot)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.PluginRoot = ""
	assert.ErrorContains(t, cfg.Validate(), "plugin root is required")

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.ErrorContains(t, cfg.Validate(), "invalid log level")

	assert.NoError(t, Default().Validate())
}
