package main

/*
#cgo CFLAGS: -I${SRCDIR}/include

#include <stdlib.h>
#include "namedcache.h"
*/
import "C"

import (
	"unsafe"

	"github.com/VanDung-dev/NamedCache/bridge"
)

// goString copies a C string argument into Go memory. A NULL pointer is
// reported as absent and is never dereferenced.
func goString(p *C.char) (string, bool) {
	if p == nil {
		return "", false
	}
	return C.GoString(p), true
}

// goNameKey copies a (name, key) argument pair.
func goNameKey(name, key *C.char) (string, string, bool) {
	n, ok := goString(name)
	if !ok {
		return "", "", false
	}
	k, ok := goString(key)
	if !ok {
		return "", "", false
	}
	return n, k, true
}

//export CreateMap
func CreateMap(name *C.char) {
	defer bridge.Recover("CreateMap")
	if n, ok := goString(name); ok {
		lib.CreateMap(n)
	}
}

//export CreateSet
func CreateSet(name *C.char) {
	defer bridge.Recover("CreateSet")
	if n, ok := goString(name); ok {
		lib.CreateSet(n)
	}
}

//export UpsertNumber
func UpsertNumber(name, key *C.char, value C.double) (inserted C.bool) {
	defer bridge.Recover("UpsertNumber")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	return C.bool(lib.UpsertNumber(n, k, float64(value)))
}

//export UpsertText
func UpsertText(name, key, value *C.char) (inserted C.bool) {
	defer bridge.Recover("UpsertText")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	v, ok := goString(value)
	if !ok {
		return false
	}
	return C.bool(lib.UpsertText(n, k, v))
}

//export UpsertNumberStatus
func UpsertNumberStatus(name, key *C.char, value C.double) (status C.int32_t) {
	status = C.int32_t(bridge.StatusInternal)
	defer bridge.Recover("UpsertNumberStatus")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return C.int32_t(bridge.StatusNullArgument)
	}
	return C.int32_t(lib.UpsertNumberStatus(n, k, float64(value)))
}

//export UpsertTextStatus
func UpsertTextStatus(name, key, value *C.char) (status C.int32_t) {
	status = C.int32_t(bridge.StatusInternal)
	defer bridge.Recover("UpsertTextStatus")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return C.int32_t(bridge.StatusNullArgument)
	}
	v, ok := goString(value)
	if !ok {
		return C.int32_t(bridge.StatusNullArgument)
	}
	return C.int32_t(lib.UpsertTextStatus(n, k, v))
}

//export InsertSetMember
func InsertSetMember(name, key *C.char) (inserted C.bool) {
	defer bridge.Recover("InsertSetMember")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	return C.bool(lib.InsertSetMember(n, k))
}

//export RemoveMapEntry
func RemoveMapEntry(name, key *C.char) (removed C.bool) {
	defer bridge.Recover("RemoveMapEntry")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	return C.bool(lib.RemoveMapEntry(n, k))
}

//export RemoveSetMember
func RemoveSetMember(name, key *C.char) (removed C.bool) {
	defer bridge.Recover("RemoveSetMember")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	return C.bool(lib.RemoveSetMember(n, k))
}

//export MapContains
func MapContains(name, key *C.char) (found C.bool) {
	defer bridge.Recover("MapContains")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	return C.bool(lib.MapContains(n, k))
}

//export SetContains
func SetContains(name, key *C.char) (found C.bool) {
	defer bridge.Recover("SetContains")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return false
	}
	return C.bool(lib.SetContains(n, k))
}

//export MapSize
func MapSize(name *C.char) (size C.long) {
	defer bridge.Recover("MapSize")
	n, ok := goString(name)
	if !ok {
		return 0
	}
	return C.long(lib.MapSize(n))
}

//export SetSize
func SetSize(name *C.char) (size C.long) {
	defer bridge.Recover("SetSize")
	n, ok := goString(name)
	if !ok {
		return 0
	}
	return C.long(lib.SetSize(n))
}

// GetText returns a caller-owned copy of the text under key, or NULL.
// Free it with FreeText.
//
//export GetText
func GetText(name, key *C.char) (text *C.char) {
	defer bridge.Recover("GetText")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return nil
	}
	return (*C.char)(lib.GetText(n, k))
}

// GetTextStatus writes a caller-owned copy of the text under key to *out
// (NULL unless the status is NC_STATUS_OK).
//
//export GetTextStatus
func GetTextStatus(name, key *C.char, out **C.char) (status C.int32_t) {
	status = C.int32_t(bridge.StatusInternal)
	defer bridge.Recover("GetTextStatus")
	if out == nil {
		return C.int32_t(bridge.StatusNullArgument)
	}
	*out = nil
	n, k, ok := goNameKey(name, key)
	if !ok {
		return C.int32_t(bridge.StatusNullArgument)
	}
	p, st := lib.GetTextStatus(n, k)
	*out = (*C.char)(p)
	return C.int32_t(st)
}

// GetNumber returns the number under key, or the lowest finite double when the
// map or key is absent or the value is text.
//
//export GetNumber
func GetNumber(name, key *C.char) (value C.double) {
	value = C.double(bridge.NumberSentinel)
	defer bridge.Recover("GetNumber")
	n, k, ok := goNameKey(name, key)
	if !ok {
		return C.double(bridge.NumberSentinel)
	}
	return C.double(lib.GetNumber(n, k))
}

//export GetNumberStatus
func GetNumberStatus(name, key *C.char, out *C.double) (status C.int32_t) {
	status = C.int32_t(bridge.StatusInternal)
	defer bridge.Recover("GetNumberStatus")
	if out == nil {
		return C.int32_t(bridge.StatusNullArgument)
	}
	*out = C.double(bridge.NumberSentinel)
	n, k, ok := goNameKey(name, key)
	if !ok {
		return C.int32_t(bridge.StatusNullArgument)
	}
	v, st := lib.GetNumberStatus(n, k)
	*out = C.double(v)
	return C.int32_t(st)
}

// ExportNumericEntries returns a caller-owned array of the map's numeric
// entries and writes its length to *size. NULL with *size == 0 when the map is
// absent or empty. Free with FreeEntries(entries, *size).
//
//export ExportNumericEntries
func ExportNumericEntries(name *C.char, size *C.int) (entries *C.NumericEntry) {
	defer bridge.Recover("ExportNumericEntries")
	if size != nil {
		*size = 0
	}
	n, ok := goString(name)
	if !ok || size == nil {
		return nil
	}
	p, count := lib.ExportNumericEntries(n)
	*size = C.int(count)
	return (*C.NumericEntry)(p)
}

// ExportNumericEntriesIPC writes a caller-owned Arrow IPC stream of the map's
// numeric entries to *out and its byte length to *length. Free with FreeBuffer.
//
//export ExportNumericEntriesIPC
func ExportNumericEntriesIPC(name *C.char, out **C.uint8_t, length *C.size_t) (status C.int32_t) {
	status = C.int32_t(bridge.StatusInternal)
	defer bridge.Recover("ExportNumericEntriesIPC")
	if out == nil || length == nil {
		return C.int32_t(bridge.StatusNullArgument)
	}
	*out = nil
	*length = 0
	n, ok := goString(name)
	if !ok {
		return C.int32_t(bridge.StatusNullArgument)
	}
	p, size, st := lib.ExportNumericEntriesIPC(n)
	*out = (*C.uint8_t)(p)
	*length = C.size_t(size)
	return C.int32_t(st)
}

// StatsJSON returns a caller-owned JSON description of the cache. Free with FreeText.
//
//export StatsJSON
func StatsJSON() (doc *C.char) {
	defer bridge.Recover("StatsJSON")
	return (*C.char)(lib.StatsJSON())
}

// CacheVersion returns a caller-owned copy of the library version. Free with FreeText.
//
//export CacheVersion
func CacheVersion() (version *C.char) {
	defer bridge.Recover("CacheVersion")
	return (*C.char)(lib.CopyText(Version))
}

//export FreeText
func FreeText(text *C.char) {
	defer bridge.Recover("FreeText")
	lib.FreeText(unsafe.Pointer(text))
}

//export FreeEntries
func FreeEntries(entries *C.NumericEntry, size C.int) {
	defer bridge.Recover("FreeEntries")
	lib.FreeEntries(unsafe.Pointer(entries), int(size))
}

//export FreeBuffer
func FreeBuffer(buf *C.uint8_t) {
	defer bridge.Recover("FreeBuffer")
	lib.FreeBuffer(unsafe.Pointer(buf))
}
