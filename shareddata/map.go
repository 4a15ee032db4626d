// File: shareddata/map.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shareddata

import "sync"

// SharedMap is a named concurrent map restricted to the allowed value set.
// Keys must be comparable primitives or strings; values are validated on
// insertion, byte slices and buffers are deep-copied in, and consumers are
// expected to copy them out before mutating.
type SharedMap struct {
	mu sync.RWMutex
	m  map[any]any
}

// NewSharedMap creates an empty map. Most callers obtain maps through
// Registry.GetMap instead.
func NewSharedMap() *SharedMap {
	return &SharedMap{m: make(map[any]any)}
}

// Put stores value under key, replacing any previous value. Fails with a
// type-rejection error when key or value is outside the allowed set; the
// map is left unchanged on failure.
func (s *SharedMap) Put(key, value any) error {
	if err := checkKeyType(key); err != nil {
		return err
	}
	if err := checkType(value); err != nil {
		return err
	}
	value = copyIfRequired(value)
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

// PutIfAbsent stores value only when key is unbound. Returns the previous
// value when one existed.
func (s *SharedMap) PutIfAbsent(key, value any) (prev any, err error) {
	if err := checkKeyType(key); err != nil {
		return nil, err
	}
	if err := checkType(value); err != nil {
		return nil, err
	}
	value = copyIfRequired(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.m[key]; ok {
		return old, nil
	}
	s.m[key] = value
	return nil, nil
}

// Get returns the value bound to key.
func (s *SharedMap) Get(key any) (any, bool) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	return v, ok
}

// Remove unbinds key, reporting whether a binding existed.
func (s *SharedMap) Remove(key any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return false
	}
	delete(s.m, key)
	return true
}

// Size returns the number of bindings.
func (s *SharedMap) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Keys returns a snapshot of all keys.
func (s *SharedMap) Keys() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]any, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

// ForEach calls fn for every binding in an unspecified order. fn must not
// call back into the map.
func (s *SharedMap) ForEach(fn func(key, value any)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.m {
		fn(k, v)
	}
}

// Clear removes every binding.
func (s *SharedMap) Clear() {
	s.mu.Lock()
	s.m = make(map[any]any)
	s.mu.Unlock()
}
