// Package tracker builds the process-wide inventory of plugin libraries and
// their private dependencies.
//
// A discovery pass walks the configured plugin root; every immediate
// subdirectory is one candidate plugin shipping a plugin.deps.json runtime
// manifest. The tracker resolves the main plugin library, associates every
// other manifest-listed file as a dependency owned by that plugin, and
// rebuilds the inventory from scratch on every pass.
//
// Association is manifest-driven. The earlier convention-driven layout
// (first library in the directory is the plugin, everything under a
// "dependencies" folder belongs to it) is not supported.
package tracker
