package cache

// Options configures a Store.
type Options struct {
	// Shards is the number of name shards per registry. Rounded up to a power of
	// two; 0 selects DefaultShards.
	Shards int
}

// Store owns the map registry and the set registry for one process.
// The two registries share no locks.
type Store struct {
	Maps *MapRegistry
	Sets *SetRegistry
}

// New creates an empty Store.
func New(opts Options) *Store {
	return &Store{
		Maps: NewMapRegistry(opts.Shards),
		Sets: NewSetRegistry(opts.Shards),
	}
}

// Stats contains store statistics.
type Stats struct {
	Maps       int `json:"maps"`
	MapEntries int `json:"map_entries"`
	Sets       int `json:"sets"`
	SetMembers int `json:"set_members"`
}

// Stats returns current store statistics. Counts are gathered collection by
// collection, so they are not a single atomic snapshot under concurrent writes.
func (s *Store) Stats() Stats {
	return Stats{
		Maps:       s.Maps.Len(),
		MapEntries: s.Maps.Entries(),
		Sets:       s.Sets.Len(),
		SetMembers: s.Sets.TotalMembers(),
	}
}
