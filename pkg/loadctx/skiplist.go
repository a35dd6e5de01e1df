package loadctx

import "sync"

// SkipList is the process-wide set of dependency file names exempted from
// native-library and identity checks. It is populated once from host
// configuration before discovery and safe for concurrent reads thereafter.
type SkipList struct {
	mu    sync.RWMutex
	names map[string]bool
}

// NewSkipList creates a skip-list seeded with the given file names.
func NewSkipList(names ...string) *SkipList {
	s := &SkipList{names: make(map[string]bool, len(names))}
	for _, name := range names {
		s.names[name] = true
	}
	return s
}

// Add inserts a file name.
func (s *SkipList) Add(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[name] = true
}

// Contains reports whether a file name is skip-listed.
func (s *SkipList) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[name]
}

// Len returns the number of skip-listed names.
func (s *SkipList) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}
