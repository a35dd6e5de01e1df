package pluginapi

import (
	"context"
	"time"
)

const (
	// SystemVersion is the plugin-system version the host currently speaks.
	// A plugin whose metadata declares a different system version fails
	// validation.
	SystemVersion = "1.0.0"

	// RuntimeVersion identifies the runtime the host was built against.
	// Plugins may optionally pin a runtime version; when they do, it must
	// match exactly.
	RuntimeVersion = "go1.25"

	// PluginsSymbol is the exported symbol a plugin module provides to
	// expose its plugin instances.
	PluginsSymbol = "ScriptRunnerPlugins"

	// MetadataSymbol is the exported symbol carrying the module's Metadata
	// record.
	MetadataSymbol = "ScriptRunnerMetadata"
)

// SettingType tags the declared type of a plugin setting.
type SettingType string

const (
	SettingString SettingType = "string"
	SettingInt    SettingType = "int"
	SettingBool   SettingType = "bool"
	SettingDouble SettingType = "double"
)

// Setting is a single named, typed configuration value handed to a plugin
// during initialization.
type Setting struct {
	Key      string      `json:"key"`
	Type     SettingType `json:"type"`
	Value    interface{} `json:"value"`
	IsSecret bool        `json:"isSecret,omitempty"`
}

// Plugin is the minimal contract every plugin must implement.
type Plugin interface {
	// Name returns the plugin's display name.
	Name() string

	// Initialize receives the ordered, validated settings before Execute.
	Initialize(settings []Setting) error

	// Execute runs the plugin's main behavior.
	Execute() error
}

// ServiceRegistrar is implemented by plugins that contribute services to the
// host's service registry. Registration happens before initialization.
type ServiceRegistrar interface {
	Plugin
	RegisterServices(registry ServiceRegistry) error
}

// AsyncPlugin is implemented by plugins whose initialization and execution
// may suspend; the host drives them through context-aware variants and waits
// for each phase to complete before starting the next.
type AsyncPlugin interface {
	Plugin
	InitializeContext(ctx context.Context, settings []Setting) error
	ExecuteContext(ctx context.Context) error
}

// AsyncServicePlugin combines service registration with asynchronous
// initialization and execution. It is the most capable activation shape and
// takes priority over all others.
type AsyncServicePlugin interface {
	AsyncPlugin
	RegisterServicesContext(ctx context.Context, registry ServiceRegistry) error
}

// Lifecycle is implemented by plugins that want start/stop/dispose callbacks
// around their hosted lifetime.
type Lifecycle interface {
	OnStart() error
	OnStop() error
	OnDispose()
}

// FrameLoop is implemented by plugins that participate in the host's frame
// loop.
type FrameLoop interface {
	Update(delta time.Duration)
	Render()
}

// LocalStorageConsumer is implemented by plugins that want a private TTL
// key/value store. The host injects a fresh store before any other
// activation phase runs.
type LocalStorageConsumer interface {
	SetLocalStorage(store LocalStorage)
	GetLocalStorage() LocalStorage
}

// ServiceRegistry is the host-provided registry plugins register services
// into. The concrete implementation lives in pkg/serviceregistry.
type ServiceRegistry interface {
	Add(name string, service interface{}) error
	Get(name string) (interface{}, bool)
}

// LocalStorage is the host-provided TTL key/value store surface. The concrete
// implementation lives in pkg/localstore.
type LocalStorage interface {
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
}
