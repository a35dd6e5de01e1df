// Package pluginapi defines the contracts between the ScriptRunner host and
// independently compiled plugin modules.
//
// # Plugin Contract
//
// Every plugin implements the minimal Plugin interface:
//
//	type EchoPlugin struct{}
//
//	func (p *EchoPlugin) Name() string                          { return "echo" }
//	func (p *EchoPlugin) Initialize(s []pluginapi.Setting) error { return nil }
//	func (p *EchoPlugin) Execute() error                         { return nil }
//
// Richer plugins opt into additional capability interfaces (ServiceRegistrar,
// AsyncPlugin, Lifecycle, FrameLoop, LocalStorageConsumer). The host probes
// capabilities at activation time; a plugin never has to implement more than
// it needs.
//
// # Metadata
//
// Each plugin module declares a Metadata record and embeds its blob form as an
// exported package-level string so the host can read identifying metadata from
// the compiled artifact without executing it:
//
//	var ScriptRunnerMetadataBlob = pluginapi.MetadataMarker +
//		`{"name":"echo","version":"1.0.0","systemVersion":"1.0.0"}`
//
// The same record is exported as the ScriptRunnerMetadata symbol for use after
// the module has been loaded.
package pluginapi
