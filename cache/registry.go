package cache

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is the shard count used when Options.Shards is zero.
const DefaultShards = 16

// MaxShards bounds Options.Shards.
const MaxShards = 1024

// shard holds the collections whose name hashes to it.
type shard[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// registry maps collection names to collections of one kind.
// Collections are never removed, so a pointer returned by lookup stays valid
// after the shard lock is released; the collection's own mutex guards its contents.
type registry[T any] struct {
	shards []*shard[T]
	mask   uint64
	newFn  func() *T
}

func newRegistry[T any](shards int, newFn func() *T) *registry[T] {
	shards = normalizeShards(shards)
	r := &registry[T]{
		shards: make([]*shard[T], shards),
		mask:   uint64(shards - 1),
		newFn:  newFn,
	}
	for i := range r.shards {
		r.shards[i] = &shard[T]{items: make(map[string]*T)}
	}
	return r
}

// normalizeShards rounds n up to a power of two within [1, MaxShards].
func normalizeShards(n int) int {
	if n <= 0 {
		return DefaultShards
	}
	if n > MaxShards {
		n = MaxShards
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (r *registry[T]) shardFor(name string) *shard[T] {
	return r.shards[xxhash.Sum64String(name)&r.mask]
}

// lookup returns the named collection or nil. It never creates one.
func (r *registry[T]) lookup(name string) *T {
	s := r.shardFor(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[name]
}

// getOrCreate returns the named collection, creating it when absent.
func (r *registry[T]) getOrCreate(name string) (*T, bool) {
	s := r.shardFor(name)

	s.mu.RLock()
	c, ok := s.items[name]
	s.mu.RUnlock()
	if ok {
		return c, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check: another caller may have created it between the locks.
	if c, ok := s.items[name]; ok {
		return c, false
	}
	c = r.newFn()
	s.items[name] = c
	return c, true
}

// each calls fn for every collection. fn must not call back into the registry.
func (r *registry[T]) each(fn func(name string, c *T)) {
	for _, s := range r.shards {
		s.mu.RLock()
		for name, c := range s.items {
			fn(name, c)
		}
		s.mu.RUnlock()
	}
}

func (r *registry[T]) names() []string {
	var out []string
	r.each(func(name string, _ *T) {
		out = append(out, name)
	})
	sort.Strings(out)
	return out
}

func (r *registry[T]) len() int {
	n := 0
	for _, s := range r.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}
