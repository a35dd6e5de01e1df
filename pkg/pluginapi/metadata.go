package pluginapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MetadataMarker prefixes the metadata blob a plugin embeds in its compiled
// module. The inspector scans raw bytes for this marker, so it must never
// appear in ordinary data. The trailing byte terminates the marker itself;
// the blob ends at MetadataTerminator.
const MetadataMarker = "\x00SCRIPTRUNNER-PLUGIN-META:v1\x00"

// MetadataTerminator closes an embedded metadata blob.
const MetadataTerminator = "\x00END-SCRIPTRUNNER-PLUGIN-META\x00"

// Metadata is the declarative record a plugin attaches to its module at build
// time. The host reads it both from the embedded blob (before loading) and
// from the MetadataSymbol export (after loading); the two must agree.
type Metadata struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Author         string `json:"author,omitempty"`
	Version        string `json:"version"`
	SystemVersion  string `json:"systemVersion"`
	RuntimeVersion string `json:"runtimeVersion,omitempty"`

	// Services lists the service method names the plugin declares. Each
	// must exist as an exported method on the plugin type when the plugin
	// implements ServiceRegistrar.
	Services []string `json:"services,omitempty"`

	// SharedDependencies names dependency files the plugin expects to
	// resolve from the host's shared set rather than its private boundary.
	SharedDependencies []string `json:"sharedDependencies,omitempty"`

	// SkipLibraryChecks names dependency files exempted from native-library
	// and identity checks during loading.
	SkipLibraryChecks []string `json:"skipLibraryChecks,omitempty"`
}

// Blob renders the metadata as an embeddable marker-delimited string.
// Plugin authors assign the result to an exported package-level variable so
// the JSON lands in the compiled module's data section.
func (m Metadata) Blob() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return MetadataMarker + string(data) + MetadataTerminator, nil
}

// ParseBlob extracts the first well-formed embedded metadata record from raw
// module bytes. It returns false when none is present.
//
// The marker constant itself is linked into any module importing this
// package, so a bare marker may occur in the data section before the real
// blob; the scan resumes past occurrences that do not parse.
func ParseBlob(data []byte) (*Metadata, bool) {
	rest := data
	for {
		start := bytes.Index(rest, []byte(MetadataMarker))
		if start < 0 {
			return nil, false
		}
		rest = rest[start+len(MetadataMarker):]

		end := bytes.Index(rest, []byte(MetadataTerminator))
		if end < 0 {
			return nil, false
		}

		var meta Metadata
		if err := json.Unmarshal(rest[:end], &meta); err == nil {
			return &meta, true
		}
	}
}
