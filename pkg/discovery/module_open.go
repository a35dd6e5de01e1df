//go:build linux || darwin || freebsd

package discovery

import (
	"fmt"
	"plugin"

	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

// OpenModule loads a compiled plugin module and resolves its export
// symbols. The metadata symbol is optional at this stage — a module without
// one still opens, and the validator rejects its plugins later.
func OpenModule(path string) (*Module, error) {
	handle, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin module %s: %w", path, err)
	}

	m := &Module{Path: path}

	if sym, err := handle.Lookup(pluginapi.MetadataSymbol); err == nil {
		switch v := sym.(type) {
		case *pluginapi.Metadata:
			m.Metadata = v
		case **pluginapi.Metadata:
			m.Metadata = *v
		default:
			return nil, fmt.Errorf("module %s: symbol %s is %T, want *pluginapi.Metadata",
				path, pluginapi.MetadataSymbol, sym)
		}
	}

	sym, err := handle.Lookup(pluginapi.PluginsSymbol)
	if err != nil {
		return nil, fmt.Errorf("module %s exports no %s symbol: %w", path, pluginapi.PluginsSymbol, err)
	}

	switch v := sym.(type) {
	case *[]pluginapi.Plugin:
		for _, p := range *v {
			m.candidates = append(m.candidates, p)
		}
	case *pluginapi.Plugin:
		m.candidates = append(m.candidates, *v)
	default:
		return nil, fmt.Errorf("module %s: symbol %s is %T, want *[]pluginapi.Plugin",
			path, pluginapi.PluginsSymbol, sym)
	}

	return m, nil
}
