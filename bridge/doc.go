// Package bridge is the boundary adapter between foreign callers and the cache.
//
// This package contains:
//   - Adapter: Go-typed entry points for every exported call (adapter.go)
//   - Status codes for the explicit error channel (status.go)
//   - C heap allocation for ownership-transferred results (alloc.go)
//   - Arrow IPC bulk export (arrow_bridge.go)
//
// Ownership contract: every non-scalar result is allocated on the C heap and
// belongs to the caller from the moment it is returned. The cache keeps no
// reference to it and never frees it. Release calls:
//   - text (GetText, StatsJSON): FreeText
//   - entries (ExportNumericEntries): FreeEntries with the returned count
//   - buffers (ExportNumericEntriesIPC): FreeBuffer
//
// The C layout of NumericEntry lives in include/namedcache.h.
package bridge
