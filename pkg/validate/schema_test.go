package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugin.settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateConfigWithSchema(t *testing.T) {
	v := New(quietLogger())
	schemaPath := writeSchema(t, `[{"key":"Timeout","type":"int"}]`)

	err := v.ValidateConfigWithSchema("Alpha", map[string]interface{}{"Timeout": 30}, schemaPath)
	assert.NoError(t, err)
}

func TestValidateConfigWithSchema_StringWhereIntDeclared(t *testing.T) {
	v := New(quietLogger())
	schemaPath := writeSchema(t, `[{"key":"Timeout","type":"int"}]`)

	err := v.ValidateConfigWithSchema("Alpha", map[string]interface{}{"Timeout": "30"}, schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected int")
}

func TestValidateConfigWithSchema_FloatWhereIntDeclared(t *testing.T) {
	v := New(quietLogger())
	schemaPath := writeSchema(t, `[{"key":"Timeout","type":"int"}]`)

	// Exact-type matching: a floating value is not accepted for "int".
	err := v.ValidateConfigWithSchema("Alpha", map[string]interface{}{"Timeout": 30.0}, schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected int")
}

func TestValidateConfigWithSchema_UnexpectedKey(t *testing.T) {
	v := New(quietLogger())
	schemaPath := writeSchema(t, `[{"key":"Timeout","type":"int"}]`)

	err := v.ValidateConfigWithSchema("Alpha",
		map[string]interface{}{"Timeout": 30, "Extra": true}, schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Extra")
	assert.Contains(t, err.Error(), "unexpected setting")
}

func TestValidateConfigWithSchema_MissingRequiredKey(t *testing.T) {
	v := New(quietLogger())
	schemaPath := writeSchema(t, `[{"key":"Timeout","type":"int"},{"key":"Host","type":"string"}]`)

	err := v.ValidateConfigWithSchema("Alpha", map[string]interface{}{"Timeout": 30}, schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
	assert.Contains(t, err.Error(), "required setting is missing")
}

func TestValidateConfigWithSchema_MissingSchemaFile(t *testing.T) {
	v := New(quietLogger())

	err := v.ValidateConfigWithSchema("Alpha", map[string]interface{}{},
		"/nonexistent/plugin.settings.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings schema")
}

func TestValidateConfigWithSchema_AllTypeTokens(t *testing.T) {
	v := New(quietLogger())
	schemaPath := writeSchema(t, `[
		{"key":"Host","type":"string"},
		{"key":"Port","type":"int"},
		{"key":"Verbose","type":"bool"},
		{"key":"Ratio","type":"double"}
	]`)

	config := map[string]interface{}{
		"Host":    "localhost",
		"Port":    8080,
		"Verbose": true,
		"Ratio":   0.75,
	}
	assert.NoError(t, v.ValidateConfigWithSchema("Alpha", config, schemaPath))
}

func TestLoadSchema_DefaultsToStringType(t *testing.T) {
	schemaPath := writeSchema(t, `[{"key":"Label","defaultValue":"hi","isSecret":true}]`)

	schema, err := LoadSchema(schemaPath)
	require.NoError(t, err)
	require.Len(t, schema, 1)
	assert.Equal(t, pluginapi.SettingString, schema[0].Type)
	assert.True(t, schema[0].IsSecret)
}

func TestSettingsFromConfig_FollowsSchemaOrder(t *testing.T) {
	schema := []SchemaEntry{
		{Key: "Host", Type: pluginapi.SettingString},
		{Key: "Port", Type: pluginapi.SettingInt},
	}
	config := map[string]interface{}{"Port": 8080, "Host": "localhost"}

	settings := SettingsFromConfig(config, schema)
	require.Len(t, settings, 2)
	assert.Equal(t, "Host", settings[0].Key)
	assert.Equal(t, "localhost", settings[0].Value)
	assert.Equal(t, "Port", settings[1].Key)
	assert.Equal(t, 8080, settings[1].Value)
}
