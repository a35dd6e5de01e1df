// Package serviceregistry provides the host-side service registry plugins
// register into during activation.
package serviceregistry

import (
	"fmt"
	"sync"
)

// Registry is a concurrency-safe name-to-service map implementing
// pluginapi.ServiceRegistry. Duplicate registrations are rejected so two
// plugins cannot silently shadow each other's services.
type Registry struct {
	mu       sync.RWMutex
	services map[string]interface{}
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		services: make(map[string]interface{}),
	}
}

// Add registers a service under a name.
func (r *Registry) Add(name string, service interface{}) error {
	if name == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if service == nil {
		return fmt.Errorf("cannot register nil service %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}

	r.services[name] = service
	return nil
}

// Get retrieves a registered service by name.
func (r *Registry) Get(name string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	return service, exists
}

// Remove unregisters a service by name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[name]; !exists {
		return fmt.Errorf("service not found: %s", name)
	}

	delete(r.services, name)
	return nil
}

// Names returns the names of all registered services.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered services.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.services)
}
