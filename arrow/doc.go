// Package arrow provides Arrow IPC encoding for bulk numeric exports.
// This package implements:
// - The (key, value) entries schema
// - Entries <-> Arrow Record conversion
// - IPC stream serialization handed across the boundary as an owned buffer
package arrow
