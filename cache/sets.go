package cache

import (
	"sort"
	"sync"
)

// namedSet is a single named set guarded by its own mutex.
type namedSet struct {
	mu      sync.Mutex
	members map[string]struct{}
}

func newNamedSet() *namedSet {
	return &namedSet{members: make(map[string]struct{})}
}

// SetRegistry owns every named set. Its locks are independent of MapRegistry's.
type SetRegistry struct {
	reg *registry[namedSet]
}

// NewSetRegistry creates an empty SetRegistry with the given shard count.
func NewSetRegistry(shards int) *SetRegistry {
	return &SetRegistry{reg: newRegistry(shards, newNamedSet)}
}

// CreateOrReset creates an empty set under name, or clears the existing one in place.
// Returns true if the set was created.
func (r *SetRegistry) CreateOrReset(name string) bool {
	s, created := r.reg.getOrCreate(name)
	if created {
		return true
	}
	s.mu.Lock()
	clear(s.members)
	s.mu.Unlock()
	return false
}

// Insert adds key to the named set. Returns true if it was newly added,
// false if it was already present, the set does not exist, or key holds a NUL byte.
func (r *SetRegistry) Insert(name, key string) bool {
	if HasNUL(key) {
		return false
	}
	s := r.reg.lookup(name)
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[key]; exists {
		return false
	}
	s.members[key] = struct{}{}
	return true
}

// Remove erases key from the named set. Returns true if it was present.
func (r *SetRegistry) Remove(name, key string) bool {
	s := r.reg.lookup(name)
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[key]; !exists {
		return false
	}
	delete(s.members, key)
	return true
}

// Contains reports membership; false when the set does not exist.
func (r *SetRegistry) Contains(name, key string) bool {
	s := r.reg.lookup(name)
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.members[key]
	return exists
}

// Size returns the member count, or 0 if the set does not exist.
func (r *SetRegistry) Size(name string) int {
	s := r.reg.lookup(name)
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Exists reports whether a set with the given name has been created.
func (r *SetRegistry) Exists(name string) bool {
	return r.reg.lookup(name) != nil
}

// Members returns a sorted copy of the named set's members.
func (r *SetRegistry) Members(name string) ([]string, error) {
	s := r.reg.lookup(name)
	if s == nil {
		return nil, ErrCollectionNotFound
	}

	s.mu.Lock()
	out := make([]string, 0, len(s.members))
	for k := range s.members {
		out = append(out, k)
	}
	s.mu.Unlock()

	sort.Strings(out)
	return out, nil
}

// Names returns the names of all sets, sorted.
func (r *SetRegistry) Names() []string {
	return r.reg.names()
}

// Len returns the number of sets.
func (r *SetRegistry) Len() int {
	return r.reg.len()
}

// TotalMembers returns the member count across all sets.
func (r *SetRegistry) TotalMembers() int {
	n := 0
	r.reg.each(func(_ string, s *namedSet) {
		s.mu.Lock()
		n += len(s.members)
		s.mu.Unlock()
	})
	return n
}
