// File: shareddata/set.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shareddata

import "sync"

// SharedSet is a named concurrent set over the comparable subset of the
// allowed type set.
type SharedSet struct {
	mu sync.RWMutex
	m  map[any]struct{}
}

// NewSharedSet creates an empty set. Most callers obtain sets through
// Registry.GetSet instead.
func NewSharedSet() *SharedSet {
	return &SharedSet{m: make(map[any]struct{})}
}

// Add inserts value, failing with a type-rejection error for disallowed
// types; the set is left unchanged on failure. Returns whether the value
// was newly added.
func (s *SharedSet) Add(value any) (bool, error) {
	if err := checkKeyType(value); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[value]; ok {
		return false, nil
	}
	s.m[value] = struct{}{}
	return true, nil
}

// Contains reports membership.
func (s *SharedSet) Contains(value any) bool {
	s.mu.RLock()
	_, ok := s.m[value]
	s.mu.RUnlock()
	return ok
}

// Remove deletes value, reporting whether it was present.
func (s *SharedSet) Remove(value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[value]; !ok {
		return false
	}
	delete(s.m, value)
	return true
}

// Size returns the number of members.
func (s *SharedSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// ForEach calls fn for every member in an unspecified order. fn must not
// call back into the set.
func (s *SharedSet) ForEach(fn func(value any)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for v := range s.m {
		fn(v)
	}
}

// Clear removes every member.
func (s *SharedSet) Clear() {
	s.mu.Lock()
	s.m = make(map[any]struct{})
	s.mu.Unlock()
}
