//go:build !(linux || darwin || freebsd)

package discovery

import "fmt"

// OpenModule is unavailable on platforms without shared-object plugin
// support.
func OpenModule(path string) (*Module, error) {
	return nil, fmt.Errorf("compiled plugin modules are not supported on this platform (%s)", path)
}
