// File: shareddata/registry.go
// Package shareddata provides named, type-gated concurrent containers that
// are safe to use from any context.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Containers are created exactly once per name, under the same fast-read /
// locked-recheck pattern the pool manager uses, but per name rather than per
// singleton. Removing a name only unregisters it: holders of the container
// keep a working instance.

package shareddata

import "sync"

// Registry resolves names to shared maps and sets.
type Registry struct {
	mu   sync.RWMutex
	maps map[string]*SharedMap
	sets map[string]*SharedSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		maps: make(map[string]*SharedMap),
		sets: make(map[string]*SharedSet),
	}
}

// GetMap returns the map registered under name, creating it on first use.
// Every call with the same name yields the identical instance.
func (r *Registry) GetMap(name string) *SharedMap {
	r.mu.RLock()
	m, ok := r.maps[name]
	r.mu.RUnlock()
	if ok {
		return m
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.maps[name]; ok {
		return m
	}
	m = NewSharedMap()
	r.maps[name] = m
	return m
}

// GetSet returns the set registered under name, creating it on first use.
func (r *Registry) GetSet(name string) *SharedSet {
	r.mu.RLock()
	s, ok := r.sets[name]
	r.mu.RUnlock()
	if ok {
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sets[name]; ok {
		return s
	}
	s = NewSharedSet()
	r.sets[name] = s
	return s
}

// RemoveMap unregisters name, reporting whether an entry existed. The
// container itself is not destroyed.
func (r *Registry) RemoveMap(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.maps[name]; !ok {
		return false
	}
	delete(r.maps, name)
	return true
}

// RemoveSet unregisters name, reporting whether an entry existed.
func (r *Registry) RemoveSet(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[name]; !ok {
		return false
	}
	delete(r.sets, name)
	return true
}
