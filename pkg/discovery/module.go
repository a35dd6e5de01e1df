// Package discovery enumerates plugin candidates exposed by loaded plugin
// modules and gates them through the validator.
package discovery

import (
	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

// Module is one loaded plugin module: its path, its metadata record, and the
// candidate values its export symbol exposed. Not every candidate has to
// implement the plugin contract; discovery filters.
type Module struct {
	Path       string
	Metadata   *pluginapi.Metadata
	candidates []interface{}
}

// NewModuleFromInstances builds a Module around already-constructed
// candidate values. The host uses this for built-in plugins and tests; for
// compiled modules use OpenModule.
func NewModuleFromInstances(meta *pluginapi.Metadata, candidates ...interface{}) *Module {
	return &Module{
		Metadata:   meta,
		candidates: candidates,
	}
}

// Candidates returns every value the module exposed, filtered or not.
func (m *Module) Candidates() []interface{} {
	out := make([]interface{}, len(m.candidates))
	copy(out, m.candidates)
	return out
}
