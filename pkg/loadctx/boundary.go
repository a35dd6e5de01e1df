package loadctx

import (
	"sync"

	"github.com/google/uuid"
)

// ResolvedLibrary identifies one library file resolved inside a boundary.
// The content hash gives each plugin its own identity for a file name, so
// two boundaries holding different builds of the same library stay distinct.
type ResolvedLibrary struct {
	FileName string
	Path     string
	Size     int64
	SHA256   string
}

// Resolver resolves a library file name to a concrete file. The shared
// resolver implements this for the host's framework allowlist.
type Resolver interface {
	Resolve(fileName string) (ResolvedLibrary, bool)
}

// Boundary is the isolated load scope owned by exactly one plugin name.
type Boundary struct {
	id         string
	pluginName string
	fallback   Resolver

	mu       sync.RWMutex
	resolved map[string]ResolvedLibrary
}

func newBoundary(pluginName string, fallback Resolver) *Boundary {
	return &Boundary{
		id:         uuid.NewString(),
		pluginName: pluginName,
		fallback:   fallback,
		resolved:   make(map[string]ResolvedLibrary),
	}
}

// ID returns the boundary's unique instance ID.
func (b *Boundary) ID() string { return b.id }

// PluginName returns the owning plugin name.
func (b *Boundary) PluginName() string { return b.pluginName }

// Resolve looks a file name up in the boundary's private table first and
// falls back to the shared resolver, so framework libraries keep resolving
// normally while plugin-private files stay isolated.
func (b *Boundary) Resolve(fileName string) (ResolvedLibrary, bool) {
	b.mu.RLock()
	lib, ok := b.resolved[fileName]
	b.mu.RUnlock()
	if ok {
		return lib, true
	}
	if b.fallback != nil {
		return b.fallback.Resolve(fileName)
	}
	return ResolvedLibrary{}, false
}

func (b *Boundary) add(lib ResolvedLibrary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resolved[lib.FileName] = lib
}

// Libraries returns a snapshot of the boundary's privately resolved
// libraries.
func (b *Boundary) Libraries() []ResolvedLibrary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	libs := make([]ResolvedLibrary, 0, len(b.resolved))
	for _, lib := range b.resolved {
		libs = append(libs, lib)
	}
	return libs
}

// SharedResolver is the process-wide allowlist of framework libraries every
// boundary may fall back to.
type SharedResolver struct {
	mu   sync.RWMutex
	libs map[string]ResolvedLibrary
}

// NewSharedResolver creates an empty shared resolver.
func NewSharedResolver() *SharedResolver {
	return &SharedResolver{libs: make(map[string]ResolvedLibrary)}
}

// Add registers a shared framework library.
func (s *SharedResolver) Add(lib ResolvedLibrary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.libs[lib.FileName] = lib
}

// Resolve implements Resolver.
func (s *SharedResolver) Resolve(fileName string) (ResolvedLibrary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lib, ok := s.libs[fileName]
	return lib, ok
}
