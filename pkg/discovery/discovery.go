package discovery

import (
	"fmt"

	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
	"github.com/scriptrunner/pluginsdk/pkg/validate"
)

// DiscoverPlugins returns every candidate in the module that implements the
// plugin contract.
func DiscoverPlugins(module *Module) []pluginapi.Plugin {
	var plugins []pluginapi.Plugin
	for _, candidate := range module.candidates {
		if p, ok := candidate.(pluginapi.Plugin); ok {
			plugins = append(plugins, p)
		}
	}
	return plugins
}

// DiscoverAndValidatePlugins discovers the module's plugins and validates
// each against the module's metadata. The first invalid plugin aborts the
// whole batch with an error identifying it.
func DiscoverAndValidatePlugins(module *Module, validator *validate.Validator) ([]pluginapi.Plugin, error) {
	plugins := DiscoverPlugins(module)
	for _, p := range plugins {
		if err := validator.Validate(p, module.Metadata); err != nil {
			return nil, fmt.Errorf("discovery aborted by invalid plugin %T: %w", p, err)
		}
	}
	return plugins, nil
}
