package loadctx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scriptrunner/pluginsdk/pkg/inspect"
	"github.com/scriptrunner/pluginsdk/pkg/observability"
	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
	"github.com/scriptrunner/pluginsdk/pkg/tracker"
)

// Registry owns the process-wide map of load boundaries, keyed by plugin
// name. Boundaries are created lazily and reused for every subsequent load
// under the same name; two distinct plugin names never share a boundary.
type Registry struct {
	skip    *SkipList
	shared  *SharedResolver
	log     *logrus.Logger
	metrics *observability.Metrics

	// inventory, when set, receives a DependencyRecord for every library
	// loaded into a boundary.
	inventory *tracker.Tracker

	mu         sync.RWMutex
	boundaries map[string]*Boundary

	// sharedDeclared records, per plugin name, the dependency file names the
	// plugin's metadata routed to the shared resolver.
	sharedDeclared map[string]map[string]bool
}

// NewRegistry creates a boundary registry. A nil skip-list means nothing is
// exempted; a nil logger gets a default.
func NewRegistry(skip *SkipList, log *logrus.Logger) *Registry {
	if skip == nil {
		skip = NewSkipList()
	}
	if log == nil {
		log = logrus.New()
	}
	return &Registry{
		skip:           skip,
		shared:         NewSharedResolver(),
		log:            log,
		boundaries:     make(map[string]*Boundary),
		sharedDeclared: make(map[string]map[string]bool),
	}
}

// ApplyMetadata merges a plugin's declared load policy into the registry:
// skip-check file names join the skip-list, and shared dependencies are
// remembered so later loads for that plugin land in the shared resolver
// instead of its private boundary.
func (r *Registry) ApplyMetadata(meta *pluginapi.Metadata) {
	if meta == nil {
		return
	}
	for _, name := range meta.SkipLibraryChecks {
		r.skip.Add(name)
	}
	if len(meta.SharedDependencies) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.sharedDeclared[meta.Name]
	if set == nil {
		set = make(map[string]bool)
		r.sharedDeclared[meta.Name] = set
	}
	for _, name := range meta.SharedDependencies {
		set[name] = true
	}
}

func (r *Registry) isDeclaredShared(pluginName, libName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sharedDeclared[pluginName][libName]
}

// SetInventory attaches the dependency inventory records are appended to.
func (r *Registry) SetInventory(t *tracker.Tracker) {
	r.inventory = t
}

// SetMetrics attaches Prometheus metrics to the registry.
func (r *Registry) SetMetrics(m *observability.Metrics) {
	r.metrics = m
}

// Shared returns the framework-allowlist resolver boundaries fall back to.
func (r *Registry) Shared() *SharedResolver {
	return r.shared
}

// Boundary returns the load boundary for pluginName, creating it on first
// use.
func (r *Registry) Boundary(pluginName string) *Boundary {
	r.mu.RLock()
	b, ok := r.boundaries[pluginName]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.boundaries[pluginName]; ok {
		return b
	}
	b = newBoundary(pluginName, r.shared)
	r.boundaries[pluginName] = b
	r.log.Debugf("Created load boundary %s for plugin %q", b.ID(), pluginName)
	return b
}

// LoadDependency loads the named library from directory into the boundary
// owned by pluginName.
//
// Skip rules, in order: a missing directory is an error; a missing file is
// logged and skipped; a skip-listed or native library is logged and skipped.
// Everything else is read, hashed into the boundary's private resolution
// table, and appended to the tracked inventory.
func (r *Registry) LoadDependency(pluginName, directory, libName string) error {
	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("dependency directory not found: %s", directory)
	}

	path := filepath.Join(directory, libName)
	if _, err := os.Stat(path); err != nil {
		r.log.Errorf("Dependency file missing, not loaded: %s", path)
		return nil
	}

	if r.skip.Contains(libName) {
		r.log.Infof("Dependency %s is skip-listed, not loading into boundary %q", libName, pluginName)
		return nil
	}
	if inspect.IsNativeLibrary(path) {
		r.log.Infof("Dependency %s is a native or unsupported library, skipping", path)
		if r.metrics != nil {
			r.metrics.NativeSkippedTotal.Inc()
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dependency %s: %w", path, err)
	}
	sum := sha256.Sum256(data)

	lib := ResolvedLibrary{
		FileName: libName,
		Path:     path,
		Size:     int64(len(data)),
		SHA256:   hex.EncodeToString(sum[:]),
	}

	if r.isDeclaredShared(pluginName, libName) {
		r.shared.Add(lib)
		r.log.Debugf("Loaded %s (%d bytes) into the shared set as declared by plugin %q", libName, len(data), pluginName)
	} else {
		r.Boundary(pluginName).add(lib)
		r.log.Debugf("Loaded dependency %s (%d bytes) into boundary %q", libName, len(data), pluginName)
	}

	if r.inventory != nil {
		r.inventory.Track(tracker.DependencyRecord{
			FileName:   libName,
			Path:       path,
			IsPlugin:   false,
			PluginName: pluginName,
		})
	}
	if r.metrics != nil {
		r.metrics.DependenciesLoadedTotal.WithLabelValues(pluginName).Inc()
	}
	return nil
}

// LoadSharedDirectory reads every regular file in directory into the shared
// resolver, making those libraries resolvable from any boundary. Skip-listed
// and native files are passed over the same way LoadDependency does.
func (r *Registry) LoadSharedDirectory(directory string) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return fmt.Errorf("shared library directory not readable: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(directory, name)

		if r.skip.Contains(name) {
			r.log.Infof("Shared library %s is skip-listed, not loading", name)
			continue
		}
		if inspect.IsNativeLibrary(path) {
			r.log.Infof("Shared library %s is a native or unsupported library, skipping", path)
			if r.metrics != nil {
				r.metrics.NativeSkippedTotal.Inc()
			}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read shared library %s: %w", path, err)
		}
		sum := sha256.Sum256(data)

		r.shared.Add(ResolvedLibrary{
			FileName: name,
			Path:     path,
			Size:     int64(len(data)),
			SHA256:   hex.EncodeToString(sum[:]),
		})
		r.log.Debugf("Loaded shared library %s (%d bytes)", name, len(data))
	}
	return nil
}

// Unload drops the boundary for pluginName along with every library it
// resolved. It reports whether a boundary existed.
func (r *Registry) Unload(pluginName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boundaries[pluginName]
	if !ok {
		return false
	}
	delete(r.boundaries, pluginName)
	r.log.Infof("Unloaded boundary %s for plugin %q", b.ID(), pluginName)
	return true
}

// BoundaryNames returns the plugin names that currently own a boundary.
func (r *Registry) BoundaryNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.boundaries))
	for name := range r.boundaries {
		names = append(names, name)
	}
	return names
}
