package inspect

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

// maxInspectBytes caps how much of a candidate binary is read during
// metadata inspection. Metadata blobs land in the module's data section well
// inside this window for any realistically sized plugin.
const maxInspectBytes = 256 << 20

// Inspector extracts plugin metadata from compiled modules without
// executing them.
type Inspector struct {
	log *logrus.Logger
}

// NewInspector creates an inspector. A nil logger gets a default.
func NewInspector(log *logrus.Logger) *Inspector {
	if log == nil {
		log = logrus.New()
	}
	return &Inspector{log: log}
}

// PluginName returns the plugin name declared by the module at path, or
// false when the file carries no metadata blob or cannot be inspected.
// Inspection failures are logged and never propagate.
func (i *Inspector) PluginName(path string) (string, bool) {
	meta, err := i.Metadata(path)
	if err != nil {
		i.log.Debugf("Metadata inspection failed for %s: %v", path, err)
		return "", false
	}
	if meta == nil || meta.Name == "" {
		return "", false
	}
	return meta.Name, true
}

// Metadata reads the full embedded metadata record from the module at path.
// It returns (nil, nil) when the file is readable but carries no blob.
func (i *Inspector) Metadata(path string) (*pluginapi.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat module: %w", err)
	}
	if info.Size() > maxInspectBytes {
		return nil, fmt.Errorf("module too large to inspect: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}

	meta, ok := pluginapi.ParseBlob(data)
	if !ok {
		return nil, nil
	}
	return meta, nil
}
