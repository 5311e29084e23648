// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package profile

import (
	"fmt"
	"sort"
	"sync"

	"github.com/propmap/propmap/pkg/types"
)

// Registry manages CMS profiles.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// globalRegistry is the default profile registry.
var globalRegistry = NewRegistry()

// NewRegistry creates a new profile registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// Register adds a profile to the registry.
// It returns an error if a profile with the same name is already registered.
func (r *Registry) Register(p Profile) error {
	if p == nil {
		return fmt.Errorf("cannot register nil profile")
	}

	name := p.Name()
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[name]; exists {
		return fmt.Errorf("profile %q is already registered", name)
	}

	r.profiles[name] = p
	return nil
}

// MustRegister adds a profile to the registry, panicking on error.
func (r *Registry) MustRegister(p Profile) {
	if err := r.Register(p); err != nil {
		panic(fmt.Sprintf("failed to register profile: %v", err))
	}
}

// Get returns a profile by name, or nil if not found.
func (r *Registry) Get(name string) Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.profiles[name]
}

// Detect picks the profile for an export. A profile named by the export
// wins; otherwise the first field of the first non-empty content type is
// matched against each profile in name order.
func (r *Registry) Detect(export *types.Export) (Profile, error) {
	if export == nil {
		return nil, fmt.Errorf("cannot detect profile of nil export")
	}

	if export.Profile != "" {
		p := r.Get(export.Profile)
		if p == nil {
			return nil, fmt.Errorf("unknown profile %q", export.Profile)
		}
		return p, nil
	}

	var sample map[string]any
	for _, ct := range export.ContentTypes {
		if len(ct.Fields) > 0 {
			sample = ct.Fields[0]
			break
		}
	}
	if sample == nil {
		return nil, fmt.Errorf("no fields to detect the profile from")
	}

	for _, name := range r.List() {
		p := r.Get(name)
		if p.Detect(sample) {
			return p, nil
		}
	}

	return nil, fmt.Errorf("no profile matches the export layout")
}

// List returns a sorted list of registered profile names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered profiles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.profiles)
}

// Has checks if a profile is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.profiles[name]
	return exists
}

// Unregister removes a profile from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[name]; !exists {
		return fmt.Errorf("profile %q is not registered", name)
	}

	delete(r.profiles, name)
	return nil
}

// Clear removes all profiles from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = make(map[string]Profile)
}

// --- Global Registry Functions ---

// Register adds a profile to the global registry.
func Register(p Profile) error {
	return globalRegistry.Register(p)
}

// MustRegister adds a profile to the global registry, panicking on error.
func MustRegister(p Profile) {
	globalRegistry.MustRegister(p)
}

// Get returns a profile by name from the global registry.
func Get(name string) Profile {
	return globalRegistry.Get(name)
}

// Detect picks the profile for an export using the global registry.
func Detect(export *types.Export) (Profile, error) {
	return globalRegistry.Detect(export)
}

// List returns all registered profile names from the global registry.
func List() []string {
	return globalRegistry.List()
}

// Has checks if a profile is registered in the global registry.
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// Global returns the global registry instance.
func Global() *Registry {
	return globalRegistry
}
