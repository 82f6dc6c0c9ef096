package main

/*
#cgo CFLAGS: -I${SRCDIR}/include

#include "namedcache.h"
*/
import "C"

// Entry points under the names used by existing hosts of the original
// CachingLib DLL. Signatures are unchanged. Two differences: the string from
// GetStringMapValue is now caller-owned (release with FreeText), and the array
// from GetDoubleMapEntries must be released with FreeEntries, not the COM allocator.

//export TryAddDoubleToMap
func TryAddDoubleToMap(id, key *C.char, value C.double) C.bool {
	return UpsertNumber(id, key, value)
}

//export TryAddStringToMap
func TryAddStringToMap(id, key, value *C.char) C.bool {
	return UpsertText(id, key, value)
}

//export TryAddStringToSet
func TryAddStringToSet(id, key *C.char) C.bool {
	return InsertSetMember(id, key)
}

//export TryRemoveFromMap
func TryRemoveFromMap(id, key *C.char) C.bool {
	return RemoveMapEntry(id, key)
}

//export TryRemoveFromSet
func TryRemoveFromSet(id, key *C.char) C.bool {
	return RemoveSetMember(id, key)
}

//export IsInMap
func IsInMap(id, key *C.char) C.bool {
	return MapContains(id, key)
}

//export IsInSet
func IsInSet(id, key *C.char) C.bool {
	return SetContains(id, key)
}

//export GetMapSize
func GetMapSize(id *C.char) C.long {
	return MapSize(id)
}

//export GetSetSize
func GetSetSize(id *C.char) C.long {
	return SetSize(id)
}

//export GetStringMapValue
func GetStringMapValue(id, key *C.char) *C.char {
	return GetText(id, key)
}

//export GetDoubleMapValue
func GetDoubleMapValue(id, key *C.char) C.double {
	return GetNumber(id, key)
}

//export GetDoubleMapEntries
func GetDoubleMapEntries(id *C.char, size *C.int) *C.NumericEntry {
	return ExportNumericEntries(id, size)
}
