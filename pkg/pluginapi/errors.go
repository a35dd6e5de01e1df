package pluginapi

import "fmt"

// InitError reports a structural or compatibility problem that prevents a
// plugin from being activated. It always identifies the offending plugin and,
// where applicable, the metadata field at fault.
type InitError struct {
	PluginName string // plugin name, or the Go type when no name is known
	Field      string // offending metadata/config field, empty when structural
	Reason     string
}

func (e *InitError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("plugin %q: invalid %s: %s", e.PluginName, e.Field, e.Reason)
	}
	return fmt.Sprintf("plugin %q: %s", e.PluginName, e.Reason)
}

// NewInitError creates an InitError for a structural failure.
func NewInitError(pluginName, reason string) *InitError {
	return &InitError{PluginName: pluginName, Reason: reason}
}

// NewFieldError creates an InitError for a specific metadata or
// configuration field.
func NewFieldError(pluginName, field, reason string) *InitError {
	return &InitError{PluginName: pluginName, Field: field, Reason: reason}
}
