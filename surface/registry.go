// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
)

// Options configure a backend when its Factory is opened.
type Options struct {
	// FontPath and FontFamily name a custom font replacing the backend's
	// built-in families. Backends without font support ignore them.
	FontPath   string
	FontFamily string

	// Logger receives configuration warnings. Nil discards them.
	Logger *slog.Logger
}

// Opener creates a Factory for a backend.
type Opener func(opts Options) (Factory, error)

type registryEntry struct {
	name     string
	priority int
	open     Opener
}

var globalRegistry = NewRegistry()

// Registry maps backend names to openers.
//
// Backends register themselves from init, the way database/sql drivers do:
//
//	func init() {
//	    surface.Register("raster", 10, open)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

// NewRegistry creates an empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Register adds a backend to the global registry. Registering an existing
// name replaces it.
func Register(name string, priority int, open Opener) {
	globalRegistry.Register(name, priority, open)
}

// Backends returns the globally registered backend names, highest priority
// first.
func Backends() []string {
	return globalRegistry.List()
}

// Open opens the named backend from the global registry. An empty name
// selects the highest-priority backend.
func Open(name string, opts Options) (Factory, error) {
	return globalRegistry.Open(name, opts)
}

// Register adds a backend to r.
func (r *Registry) Register(name string, priority int, open Opener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = registryEntry{name: name, priority: priority, open: open}
}

// Unregister removes a backend from r.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns backend names sorted by priority, highest first. Equal
// priorities are ordered by name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Open opens the named backend. An empty name tries backends in priority
// order and returns the first that opens.
func (r *Registry) Open(name string, opts Options) (Factory, error) {
	if name != "" {
		r.mu.RLock()
		e, ok := r.entries[name]
		r.mu.RUnlock()
		if !ok {
			return nil, &BackendNotFoundError{Name: name}
		}
		return e.open(opts)
	}

	var errs []error
	for _, n := range r.List() {
		f, err := r.Open(n, opts)
		if err == nil {
			return f, nil
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, ErrNoBackend
}

// ErrNoBackend is returned when no backend is registered.
var ErrNoBackend = errors.New("surface: no backend registered")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}
