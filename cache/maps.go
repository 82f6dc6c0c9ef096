package cache

import (
	"sort"
	"sync"
)

// UpsertResult reports the outcome of MapRegistry.Upsert.
type UpsertResult int

const (
	// UpsertAbsent means the named map does not exist; nothing was written.
	UpsertAbsent UpsertResult = iota
	// UpsertInserted means the key was new.
	UpsertInserted
	// UpsertOverwritten means an existing value was replaced.
	UpsertOverwritten
	// UpsertRejected means the key or text value holds a NUL byte; nothing was written.
	UpsertRejected
)

func (r UpsertResult) String() string {
	switch r {
	case UpsertAbsent:
		return "absent"
	case UpsertInserted:
		return "inserted"
	case UpsertOverwritten:
		return "overwritten"
	case UpsertRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Inserted collapses the result to the boundary's boolean: true only for a new key.
// Absent, overwritten and rejected all map to false.
func (r UpsertResult) Inserted() bool {
	return r == UpsertInserted
}

// NumericEntry is one (key, number) pair exported from a map.
type NumericEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// namedMap is a single named map guarded by its own mutex.
type namedMap struct {
	mu      sync.Mutex
	entries map[string]Value
}

func newNamedMap() *namedMap {
	return &namedMap{entries: make(map[string]Value)}
}

// MapRegistry owns every named map. It is safe for concurrent use.
type MapRegistry struct {
	reg *registry[namedMap]
}

// NewMapRegistry creates an empty MapRegistry with the given shard count.
func NewMapRegistry(shards int) *MapRegistry {
	return &MapRegistry{reg: newRegistry(shards, newNamedMap)}
}

// CreateOrReset creates an empty map under name, or clears the existing one in place.
// Returns true if the map was created.
func (r *MapRegistry) CreateOrReset(name string) bool {
	m, created := r.reg.getOrCreate(name)
	if created {
		return true
	}
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
	return false
}

// Upsert inserts or overwrites key in the named map. The stored tag may change.
// Keys and text values containing a NUL byte are rejected.
func (r *MapRegistry) Upsert(name, key string, v Value) UpsertResult {
	if HasNUL(key) || (v.kind == KindText && HasNUL(v.text)) {
		return UpsertRejected
	}
	m := r.reg.lookup(name)
	if m == nil {
		return UpsertAbsent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.entries[key]
	m.entries[key] = v
	if exists {
		return UpsertOverwritten
	}
	return UpsertInserted
}

// Remove erases key from the named map.
// Returns true if the entry was found and removed.
func (r *MapRegistry) Remove(name, key string) bool {
	m := r.reg.lookup(name)
	if m == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		return false
	}
	delete(m.entries, key)
	return true
}

// Contains reports whether key exists in the named map.
func (r *MapRegistry) Contains(name, key string) bool {
	m := r.reg.lookup(name)
	if m == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.entries[key]
	return exists
}

// Size returns the entry count of the named map, or 0 if it does not exist.
func (r *MapRegistry) Size(name string) int {
	m := r.reg.lookup(name)
	if m == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Exists reports whether a map with the given name has been created.
func (r *MapRegistry) Exists(name string) bool {
	return r.reg.lookup(name) != nil
}

// Get returns the value stored under key.
func (r *MapRegistry) Get(name, key string) (Value, error) {
	m := r.reg.lookup(name)
	if m == nil {
		return Value{}, ErrCollectionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	if !ok {
		return Value{}, ErrKeyNotFound
	}
	return v, nil
}

// Text returns the text stored under key. A number-tagged value yields a *TagMismatchError.
func (r *MapRegistry) Text(name, key string) (string, error) {
	v, err := r.Get(name, key)
	if err != nil {
		return "", err
	}
	return v.AsText()
}

// Number returns the number stored under key. A text-tagged value yields a *TagMismatchError.
func (r *MapRegistry) Number(name, key string) (float64, error) {
	v, err := r.Get(name, key)
	if err != nil {
		return 0, err
	}
	return v.AsNumber()
}

// NumericEntries returns every number-tagged entry of the named map, sorted by key.
// Text-tagged entries are skipped. The slice is a copy owned by the caller.
func (r *MapRegistry) NumericEntries(name string) ([]NumericEntry, error) {
	m := r.reg.lookup(name)
	if m == nil {
		return nil, ErrCollectionNotFound
	}

	m.mu.Lock()
	out := make([]NumericEntry, 0, len(m.entries))
	for k, v := range m.entries {
		if v.kind != KindNumber {
			continue
		}
		out = append(out, NumericEntry{Key: k, Value: v.num})
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Names returns the names of all maps, sorted.
func (r *MapRegistry) Names() []string {
	return r.reg.names()
}

// Len returns the number of maps.
func (r *MapRegistry) Len() int {
	return r.reg.len()
}

// Entries returns the total entry count across all maps.
func (r *MapRegistry) Entries() int {
	n := 0
	r.reg.each(func(_ string, m *namedMap) {
		m.mu.Lock()
		n += len(m.entries)
		m.mu.Unlock()
	})
	return n
}
