package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writePluginFixture(t *testing.T, rootDir, dirName, pluginName string) string {
	t.Helper()

	pluginDir := filepath.Join(rootDir, dirName)
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))

	moduleFile := pluginName + ".so"
	manifest := `{"targets":{"go1.25":{"` + pluginName + `/1.0.0":{"runtime":{"` + moduleFile + `":{}}}}}}`
	require.NoError(t, os.WriteFile(
		filepath.Join(pluginDir, "plugin.deps.json"), []byte(manifest), 0o644))

	meta := pluginapi.Metadata{
		Name:          pluginName,
		Version:       "1.0.0",
		SystemVersion: pluginapi.SystemVersion,
	}
	blob, err := meta.Blob()
	require.NoError(t, err)

	modulePath := filepath.Join(pluginDir, moduleFile)
	require.NoError(t, os.WriteFile(modulePath, []byte("\x7FELF"+blob), 0o644))
	return modulePath
}

func TestScanCommand(t *testing.T) {
	root := t.TempDir()
	writePluginFixture(t, root, "alpha", "Alpha")
	writePluginFixture(t, root, "beta", "Beta")

	out, err := runCommand(t, "scan", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Plugins (2):")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
}

func TestScanCommand_MissingRoot(t *testing.T) {
	_, err := runCommand(t, "scan", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin root directory not found")
}

func TestInspectCommand(t *testing.T) {
	modulePath := writePluginFixture(t, t.TempDir(), "alpha", "Alpha")

	out, err := runCommand(t, "inspect", modulePath)
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "Alpha"`)
	assert.Contains(t, out, `"version": "1.0.0"`)
}

func TestInspectCommand_NoMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.so")
	require.NoError(t, os.WriteFile(path, []byte("\x7FELF no blob here"), 0o644))

	_, err := runCommand(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plugin metadata found")
}

func TestValidateConfigCommand(t *testing.T) {
	dir := t.TempDir()

	schemaPath := filepath.Join(dir, "plugin.settings.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(
		`[{"key":"Timeout","type":"int"},{"key":"Endpoint","type":"string"}]`), 0o644))

	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(
		`{"Timeout":30,"Endpoint":"https://example.test"}`), 0o644))

	out, err := runCommand(t, "validate-config", "Alpha", configPath, schemaPath)
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")
}

func TestValidateConfigCommand_TypeMismatch(t *testing.T) {
	dir := t.TempDir()

	schemaPath := filepath.Join(dir, "plugin.settings.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(
		`[{"key":"Timeout","type":"int"}]`), 0o644))

	// A fractional value must not satisfy an int setting.
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"Timeout":30.5}`), 0o644))

	_, err := runCommand(t, "validate-config", "Alpha", configPath, schemaPath)
	require.Error(t, err)

	var initErr *pluginapi.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "Timeout", initErr.Field)
}
