package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scriptrunner/pluginsdk/pkg/inspect"
	"github.com/scriptrunner/pluginsdk/pkg/observability"
)

// DependencyRecord is one tracked binary file: either a main plugin library
// or a dependency owned by a plugin. Records are immutable once created and
// rebuilt wholesale on the next discovery pass.
type DependencyRecord struct {
	FileName   string
	Path       string
	IsPlugin   bool
	PluginName string // owning plugin; empty until associated
}

// PluginPathRecord inventories a discovered main plugin library before its
// metadata is known.
type PluginPathRecord struct {
	Name string
	Path string
}

// Tracker scans the plugin root and maintains the dependency inventory.
// A Tracker is not safe for two concurrent discovery passes; callers
// serialize scans.
type Tracker struct {
	rootDir   string
	inspector *inspect.Inspector
	log       *logrus.Logger
	metrics   *observability.Metrics

	records     []DependencyRecord
	pluginPaths []PluginPathRecord
	trackedPath map[string]bool // invariant: each path recorded at most once
}

// New creates a tracker over the given plugin root directory.
func New(rootDir string, log *logrus.Logger) *Tracker {
	if log == nil {
		log = logrus.New()
	}
	return &Tracker{
		rootDir:   rootDir,
		inspector: inspect.NewInspector(log),
		log:       log,
	}
}

// SetMetrics attaches Prometheus metrics to the tracker.
func (t *Tracker) SetMetrics(m *observability.Metrics) {
	t.metrics = m
}

// DiscoverAndTrackPlugins runs a full discovery pass. The previous inventory
// is discarded first. A missing plugin root aborts the pass; any problem
// local to one plugin subdirectory logs a warning and skips only that
// subdirectory.
func (t *Tracker) DiscoverAndTrackPlugins() error {
	info, err := os.Stat(t.rootDir)
	if err != nil {
		if t.metrics != nil {
			t.metrics.ScanErrorsTotal.Inc()
		}
		return fmt.Errorf("plugin root directory not found: %s: %w", t.rootDir, err)
	}
	if !info.IsDir() {
		if t.metrics != nil {
			t.metrics.ScanErrorsTotal.Inc()
		}
		return fmt.Errorf("plugin root is not a directory: %s", t.rootDir)
	}

	t.records = nil
	t.pluginPaths = nil
	t.trackedPath = make(map[string]bool)
	seenPluginNames := make(map[string]bool)

	entries, err := os.ReadDir(t.rootDir)
	if err != nil {
		return fmt.Errorf("failed to read plugin root %s: %w", t.rootDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginDir := filepath.Join(t.rootDir, entry.Name())
		if err := t.trackPluginDir(pluginDir, seenPluginNames); err != nil {
			t.log.Warnf("Skipping plugin directory %s: %v", pluginDir, err)
		}
	}

	if t.metrics != nil {
		t.metrics.ScansTotal.Inc()
		t.metrics.PluginsTracked.Set(float64(len(t.pluginPaths)))
		t.metrics.DependenciesTracked.Set(float64(len(t.records) - len(t.pluginPaths)))
	}

	t.log.Infof("Discovery pass complete: %d plugins, %d tracked files",
		len(t.pluginPaths), len(t.records))
	return nil
}

// trackPluginDir processes one plugin subdirectory: parse its manifest,
// resolve the main library, and record the dependency set.
func (t *Tracker) trackPluginDir(pluginDir string, seenPluginNames map[string]bool) error {
	manifestPath := filepath.Join(pluginDir, DepsManifestName)
	files, err := runtimeFiles(manifestPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("manifest declares no runtime files")
	}

	// The first manifest-listed file that exists alongside the manifest is
	// the main plugin library.
	mainIdx := -1
	for i, file := range files {
		if _, err := os.Stat(filepath.Join(pluginDir, file)); err == nil {
			mainIdx = i
			break
		}
	}
	if mainIdx < 0 {
		return fmt.Errorf("no manifest-listed library exists in %s", pluginDir)
	}

	mainFile := files[mainIdx]
	mainPath := filepath.Join(pluginDir, mainFile)

	pluginName, ok := t.inspector.PluginName(mainPath)
	if !ok {
		// Fall back to the file base name so tracking still works for
		// modules that predate embedded metadata.
		pluginName = strings.TrimSuffix(mainFile, filepath.Ext(mainFile))
		t.log.Debugf("No embedded metadata in %s, using %q", mainPath, pluginName)
	}

	if seenPluginNames[pluginName] {
		return fmt.Errorf("duplicate plugin name %q", pluginName)
	}
	seenPluginNames[pluginName] = true

	t.appendRecord(DependencyRecord{
		FileName:   mainFile,
		Path:       mainPath,
		IsPlugin:   true,
		PluginName: pluginName,
	})
	t.pluginPaths = append(t.pluginPaths, PluginPathRecord{
		Name: pluginName,
		Path: mainPath,
	})

	for i, file := range files {
		if i == mainIdx {
			continue
		}
		depPath := filepath.Join(pluginDir, file)
		if _, err := os.Stat(depPath); err != nil {
			t.log.Warnf("Manifest-listed dependency missing, skipping: %s", depPath)
			continue
		}
		t.appendRecord(DependencyRecord{
			FileName:   file,
			Path:       depPath,
			IsPlugin:   false,
			PluginName: pluginName,
		})
	}

	return nil
}

func (t *Tracker) appendRecord(rec DependencyRecord) {
	if t.trackedPath[rec.Path] {
		return
	}
	t.trackedPath[rec.Path] = true
	t.records = append(t.records, rec)
}

// TrackedPlugins returns all main-plugin records, de-duplicated by file
// name.
func (t *Tracker) TrackedPlugins() []DependencyRecord {
	return t.filterRecords(true)
}

// TrackedDependencies returns all non-plugin records, de-duplicated by file
// name.
func (t *Tracker) TrackedDependencies() []DependencyRecord {
	return t.filterRecords(false)
}

func (t *Tracker) filterRecords(isPlugin bool) []DependencyRecord {
	seen := make(map[string]bool)
	var out []DependencyRecord
	for _, rec := range t.records {
		if rec.IsPlugin != isPlugin || seen[rec.FileName] {
			continue
		}
		seen[rec.FileName] = true
		out = append(out, rec)
	}
	return out
}

// PluginPaths returns the lightweight name+path records for all discovered
// main plugin libraries.
func (t *Tracker) PluginPaths() []PluginPathRecord {
	out := make([]PluginPathRecord, len(t.pluginPaths))
	copy(out, t.pluginPaths)
	return out
}

// Track appends an externally loaded file to the inventory. The isolated
// loader uses this to record dependencies it pulls into a boundary.
func (t *Tracker) Track(rec DependencyRecord) {
	t.appendRecord(rec)
}
