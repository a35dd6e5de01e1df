package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// DepsManifestName is the runtime-dependency manifest each plugin
// subdirectory must ship.
const DepsManifestName = "plugin.deps.json"

// depsManifest mirrors the runtime manifest layout: a top-level "targets"
// object whose members are packages, each optionally carrying a "runtime"
// object keyed by relative library file names.
type depsManifest struct {
	Targets map[string]map[string]manifestPackage `json:"targets"`
}

type manifestPackage struct {
	Runtime map[string]json.RawMessage `json:"runtime"`
}

// runtimeFiles parses a manifest and returns the union of all runtime file
// names it declares, sorted so that repeated scans of the same tree resolve
// the same main library.
func runtimeFiles(manifestPath string) ([]string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest depsManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, packages := range manifest.Targets {
		for _, pkg := range packages {
			for file := range pkg.Runtime {
				if !seen[file] {
					seen[file] = true
					files = append(files, file)
				}
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
