// Package loadctx isolates each plugin's private dependencies in a named,
// collectible load boundary.
//
// A boundary owns every library resolved on behalf of one plugin name. Two
// plugins shipping conflicting versions of the same dependency never collide
// because each resolves from its own boundary first; only names a boundary
// cannot satisfy fall through to the shared resolver, which holds the host's
// framework allowlist. Unloading a boundary drops all of its records so a
// plugin can be removed without restarting the host.
package loadctx
