package bridge

/*
#cgo CFLAGS: -I${SRCDIR}/../include

#include <stdlib.h>
#include <string.h>
#include "namedcache.h"

// C.malloc from cgo aborts the process on failure; these return NULL instead.
static void* nc_malloc(size_t n) {
  return malloc(n == 0 ? 1 : n);
}

static char* nc_strndup(const char* s, size_t n) {
  char* out = (char*)malloc(n + 1);
  if (out == NULL) {
    return NULL;
  }
  if (n > 0) {
    memcpy(out, s, n);
  }
  out[n] = '\0';
  return out;
}
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/VanDung-dev/NamedCache/cache"
)

// MaxExportEntries is the largest entry count representable in the C int count.
const MaxExportEntries = math.MaxInt32

// C heap entry points. Tests swap them to inject allocation failures.
var (
	cMalloc = func(n uintptr) unsafe.Pointer {
		return C.nc_malloc(C.size_t(n))
	}
	cStrndup = func(s string) unsafe.Pointer {
		return unsafe.Pointer(C.nc_strndup((*C.char)(unsafe.Pointer(unsafe.StringData(s))), C.size_t(len(s))))
	}
	cFree = func(p unsafe.Pointer) {
		C.free(p)
	}
)

// allocText copies s to a NUL-terminated C string owned by the caller.
// Returns nil if the allocation fails.
func allocText(s string) unsafe.Pointer {
	return cStrndup(s)
}

// allocEntries copies entries to a C array of NumericEntry with C-owned keys.
// Returns nil for an empty slice. On failure everything allocated so far is freed.
func allocEntries(entries []cache.NumericEntry) (unsafe.Pointer, bool) {
	if len(entries) == 0 {
		return nil, true
	}
	if len(entries) > MaxExportEntries {
		return nil, false
	}

	p := cMalloc(uintptr(len(entries)) * unsafe.Sizeof(C.NumericEntry{}))
	if p == nil {
		return nil, false
	}

	arr := unsafe.Slice((*C.NumericEntry)(p), len(entries))
	for i, e := range entries {
		key := allocText(e.Key)
		if key == nil {
			freeEntries(p, i)
			return nil, false
		}
		arr[i].key = (*C.char)(key)
		arr[i].value = C.double(e.Value)
	}
	return p, true
}

// allocBuffer copies b to a C buffer owned by the caller.
func allocBuffer(b []byte) unsafe.Pointer {
	p := cMalloc(uintptr(len(b)))
	if p == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(p), len(b)), b)
	return p
}

func freeText(p unsafe.Pointer) {
	if p != nil {
		cFree(p)
	}
}

// freeEntries releases the first n keys and then the array itself.
func freeEntries(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	if n > 0 {
		for _, e := range unsafe.Slice((*C.NumericEntry)(p), n) {
			if e.key != nil {
				cFree(unsafe.Pointer(e.key))
			}
		}
	}
	cFree(p)
}

// ReadText copies a C string returned by the adapter into Go memory.
// It does not free p.
func ReadText(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	return C.GoString((*C.char)(p))
}

// ReadEntries copies n entries of a NumericEntry array into Go memory.
// It does not free p.
func ReadEntries(p unsafe.Pointer, n int) []cache.NumericEntry {
	if p == nil || n <= 0 {
		return nil
	}
	out := make([]cache.NumericEntry, n)
	for i, e := range unsafe.Slice((*C.NumericEntry)(p), n) {
		out[i] = cache.NumericEntry{Key: C.GoString(e.key), Value: float64(e.value)}
	}
	return out
}

// ReadBuffer copies n bytes of a C buffer into Go memory.
// It does not free p.
func ReadBuffer(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return append([]byte(nil), unsafe.Slice((*byte)(p), n)...)
}
