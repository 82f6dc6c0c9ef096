package bridge

import (
	"math"
	"unsafe"

	"github.com/goccy/go-json"
	"github.com/golang/glog"

	"github.com/VanDung-dev/NamedCache/arrow"
	"github.com/VanDung-dev/NamedCache/cache"
	"github.com/VanDung-dev/NamedCache/metrics"
)

// NumberSentinel is returned by GetNumber when no number can be produced.
// It is the lowest finite float64.
const NumberSentinel = -math.MaxFloat64

// entriesEncoder serialises numeric entries for ExportNumericEntriesIPC.
type entriesEncoder interface {
	EncodeEntries(collection string, entries []cache.NumericEntry) ([]byte, error)
}

// Adapter translates boundary calls into registry operations.
// It is safe for concurrent use; all locking happens inside the registries.
type Adapter struct {
	store   *cache.Store
	metrics *metrics.Metrics
	encoder entriesEncoder
	server  *metrics.MetricsServer
}

// NewAdapter creates an Adapter over store. m may be nil.
func NewAdapter(store *cache.Store, m *metrics.Metrics) *Adapter {
	if store == nil {
		store = cache.New(cache.Options{})
	}
	return &Adapter{
		store:   store,
		metrics: m,
		encoder: arrow.NewEncoder(),
	}
}

// Store returns the underlying store.
func (a *Adapter) Store() *cache.Store {
	return a.store
}

// Metrics returns the metrics the adapter records to, or nil.
func (a *Adapter) Metrics() *metrics.Metrics {
	return a.metrics
}

func (a *Adapter) syncCollections() {
	if a.metrics == nil {
		return
	}
	a.metrics.UpdateCollections(a.store.Maps.Len(), a.store.Sets.Len())
}

func boolOutcome(ok bool) string {
	if ok {
		return metrics.OutcomeOK
	}
	return metrics.OutcomeMiss
}

// CreateMap creates an empty map, or clears an existing one in place.
func (a *Adapter) CreateMap(name string) {
	if a.store.Maps.CreateOrReset(name) {
		glog.V(2).Infof("map %q created", name)
		a.syncCollections()
	} else {
		glog.V(2).Infof("map %q reset", name)
	}
	a.metrics.RecordCall(metrics.KindMap, "create", metrics.OutcomeOK)
}

// CreateSet creates an empty set, or clears an existing one in place.
func (a *Adapter) CreateSet(name string) {
	if a.store.Sets.CreateOrReset(name) {
		glog.V(2).Infof("set %q created", name)
		a.syncCollections()
	} else {
		glog.V(2).Infof("set %q reset", name)
	}
	a.metrics.RecordCall(metrics.KindSet, "create", metrics.OutcomeOK)
}

func (a *Adapter) upsert(name, key string, v cache.Value) Status {
	st := statusFromUpsert(a.store.Maps.Upsert(name, key, v))
	outcome := metrics.OutcomeOK
	switch st {
	case StatusCollectionNotFound:
		outcome = metrics.OutcomeAbsent
	case StatusInvalidArgument:
		glog.Warningf("upsert(%q, %q): key or value holds a NUL byte", name, key)
		outcome = metrics.OutcomeRejected
	}
	a.metrics.RecordCall(metrics.KindMap, "upsert", outcome)
	return st
}

// UpsertNumber stores a number. Returns true only when key was new; false when
// it overwrote a value or the map does not exist.
func (a *Adapter) UpsertNumber(name, key string, v float64) bool {
	return a.upsert(name, key, cache.Number(v)) == StatusInserted
}

// UpsertText stores a text value. Same result convention as UpsertNumber.
func (a *Adapter) UpsertText(name, key, v string) bool {
	return a.upsert(name, key, cache.Text(v)) == StatusInserted
}

// UpsertNumberStatus is UpsertNumber with a three-way result:
// StatusInserted, StatusOverwritten or StatusCollectionNotFound.
// A key holding a NUL byte gives StatusInvalidArgument.
func (a *Adapter) UpsertNumberStatus(name, key string, v float64) Status {
	return a.upsert(name, key, cache.Number(v))
}

// UpsertTextStatus is UpsertText with a three-way result.
func (a *Adapter) UpsertTextStatus(name, key, v string) Status {
	return a.upsert(name, key, cache.Text(v))
}

// InsertSetMember adds key to a set. Returns true if it was newly added.
// Keys holding a NUL byte are refused.
func (a *Adapter) InsertSetMember(name, key string) bool {
	if cache.HasNUL(key) {
		glog.Warningf("insert(%q, %q): key holds a NUL byte", name, key)
		a.metrics.RecordCall(metrics.KindSet, "insert", metrics.OutcomeRejected)
		return false
	}
	ok := a.store.Sets.Insert(name, key)
	a.metrics.RecordCall(metrics.KindSet, "insert", boolOutcome(ok))
	return ok
}

// RemoveMapEntry removes key from a map. Returns true if an entry was removed.
func (a *Adapter) RemoveMapEntry(name, key string) bool {
	ok := a.store.Maps.Remove(name, key)
	a.metrics.RecordCall(metrics.KindMap, "remove", boolOutcome(ok))
	return ok
}

// RemoveSetMember removes key from a set. Returns true if it was present.
func (a *Adapter) RemoveSetMember(name, key string) bool {
	ok := a.store.Sets.Remove(name, key)
	a.metrics.RecordCall(metrics.KindSet, "remove", boolOutcome(ok))
	return ok
}

// MapContains reports whether key is in the named map.
func (a *Adapter) MapContains(name, key string) bool {
	ok := a.store.Maps.Contains(name, key)
	a.metrics.RecordCall(metrics.KindMap, "contains", boolOutcome(ok))
	return ok
}

// SetContains reports whether key is in the named set.
func (a *Adapter) SetContains(name, key string) bool {
	ok := a.store.Sets.Contains(name, key)
	a.metrics.RecordCall(metrics.KindSet, "contains", boolOutcome(ok))
	return ok
}

// MapSize returns the entry count, 0 if the map does not exist.
func (a *Adapter) MapSize(name string) int {
	n := a.store.Maps.Size(name)
	a.metrics.RecordCall(metrics.KindMap, "size", metrics.OutcomeOK)
	return n
}

// SetSize returns the member count, 0 if the set does not exist.
func (a *Adapter) SetSize(name string) int {
	n := a.store.Sets.Size(name)
	a.metrics.RecordCall(metrics.KindSet, "size", metrics.OutcomeOK)
	return n
}

// readOutcome records a typed read and logs tag mismatches.
func (a *Adapter) readOutcome(op, name, key string, st Status) {
	switch st {
	case StatusOK:
		a.metrics.RecordCall(metrics.KindMap, op, metrics.OutcomeOK)
	case StatusTagMismatch:
		glog.Warningf("%s(%q, %q): stored value has the other tag", op, name, key)
		a.metrics.RecordTagMismatch(op)
		a.metrics.RecordCall(metrics.KindMap, op, metrics.OutcomeTagMismatch)
	case StatusCollectionNotFound:
		a.metrics.RecordCall(metrics.KindMap, op, metrics.OutcomeAbsent)
	case StatusAllocFailed:
		a.metrics.RecordCall(metrics.KindMap, op, metrics.OutcomeAllocFailed)
	default:
		a.metrics.RecordCall(metrics.KindMap, op, metrics.OutcomeMiss)
	}
}

// GetTextStatus returns an owned copy of the text stored under key, and a status.
// The pointer is nil unless the status is StatusOK; free it with FreeText.
func (a *Adapter) GetTextStatus(name, key string) (unsafe.Pointer, Status) {
	s, err := a.store.Maps.Text(name, key)
	st := statusFromError(err)
	var p unsafe.Pointer
	if st == StatusOK {
		p = a.CopyText(s)
		if p == nil {
			st = StatusAllocFailed
		}
	}
	a.readOutcome("get_text", name, key, st)
	return p, st
}

// GetText returns an owned copy of the text stored under key, or nil when the
// map or key is absent, the value is a number, or allocation fails.
func (a *Adapter) GetText(name, key string) unsafe.Pointer {
	p, _ := a.GetTextStatus(name, key)
	return p
}

// GetNumberStatus returns the number stored under key and a status.
// The number is NumberSentinel unless the status is StatusOK.
func (a *Adapter) GetNumberStatus(name, key string) (float64, Status) {
	v, err := a.store.Maps.Number(name, key)
	st := statusFromError(err)
	a.readOutcome("get_number", name, key, st)
	if st != StatusOK {
		return NumberSentinel, st
	}
	return v, st
}

// GetNumber returns the number stored under key, or NumberSentinel when the map
// or key is absent or the value is text.
func (a *Adapter) GetNumber(name, key string) float64 {
	v, _ := a.GetNumberStatus(name, key)
	return v
}

// ExportNumericEntries returns an owned NumericEntry array with every
// number-tagged entry of the map, and its length. Text entries are skipped.
// Returns (nil, 0) when the map is absent, has no numeric entries, or
// allocation fails. Free the result with FreeEntries(p, n).
func (a *Adapter) ExportNumericEntries(name string) (unsafe.Pointer, int) {
	entries, err := a.store.Maps.NumericEntries(name)
	if err != nil {
		a.metrics.RecordCall(metrics.KindMap, "export", metrics.OutcomeAbsent)
		return nil, 0
	}

	p, ok := allocEntries(entries)
	if !ok {
		glog.Errorf("export %q: allocation of %d entries failed", name, len(entries))
		a.metrics.RecordAlloc(metrics.AllocEntries, false)
		a.metrics.RecordCall(metrics.KindMap, "export", metrics.OutcomeAllocFailed)
		return nil, 0
	}
	if p != nil {
		a.metrics.RecordAlloc(metrics.AllocEntries, true)
	}
	a.metrics.RecordExport(len(entries))
	a.metrics.RecordCall(metrics.KindMap, "export", metrics.OutcomeOK)
	return p, len(entries)
}

// statsDocument is the JSON shape returned by StatsJSON.
type statsDocument struct {
	cache.Stats
	MapNames []string `json:"map_names"`
	SetNames []string `json:"set_names"`
}

// StatsJSON returns an owned JSON document describing the store, or nil on failure.
// Free it with FreeText.
func (a *Adapter) StatsJSON() unsafe.Pointer {
	doc := statsDocument{
		Stats:    a.store.Stats(),
		MapNames: a.store.Maps.Names(),
		SetNames: a.store.Sets.Names(),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		glog.Errorf("stats: marshal failed: %v", err)
		return nil
	}
	return a.CopyText(string(data))
}

// CopyText returns a caller-owned C copy of s, or nil if allocation fails.
// Free it with FreeText.
func (a *Adapter) CopyText(s string) unsafe.Pointer {
	p := allocText(s)
	if p == nil {
		glog.Errorf("allocation of %d-byte text failed", len(s)+1)
	}
	a.metrics.RecordAlloc(metrics.AllocText, p != nil)
	return p
}

// FreeText releases a string returned by GetText, GetTextStatus or StatsJSON.
// nil is ignored.
func (a *Adapter) FreeText(p unsafe.Pointer) {
	if p == nil {
		return
	}
	freeText(p)
	a.metrics.RecordRelease(metrics.AllocText)
}

// FreeEntries releases an array returned by ExportNumericEntries together with
// its n keys. nil is ignored.
func (a *Adapter) FreeEntries(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	freeEntries(p, n)
	a.metrics.RecordRelease(metrics.AllocEntries)
}

// FreeBuffer releases a buffer returned by ExportNumericEntriesIPC. nil is ignored.
func (a *Adapter) FreeBuffer(p unsafe.Pointer) {
	if p == nil {
		return
	}
	freeText(p)
	a.metrics.RecordRelease(metrics.AllocBuffer)
}
