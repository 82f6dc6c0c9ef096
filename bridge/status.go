package bridge

import (
	"errors"

	"github.com/VanDung-dev/NamedCache/cache"
)

// Status is the explicit result code returned by the *Status entry points.
// Values mirror NamedCacheStatus in include/namedcache.h.
type Status int32

const (
	StatusOK                 Status = 0
	StatusInserted           Status = 1
	StatusOverwritten        Status = 2
	StatusCollectionNotFound Status = -1
	StatusKeyNotFound        Status = -2
	StatusTagMismatch        Status = -3
	StatusAllocFailed        Status = -4
	StatusNullArgument       Status = -5
	StatusInternal           Status = -6
	StatusInvalidArgument    Status = -7
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInserted:
		return "inserted"
	case StatusOverwritten:
		return "overwritten"
	case StatusCollectionNotFound:
		return "collection not found"
	case StatusKeyNotFound:
		return "key not found"
	case StatusTagMismatch:
		return "tag mismatch"
	case StatusAllocFailed:
		return "allocation failed"
	case StatusNullArgument:
		return "null argument"
	case StatusInternal:
		return "internal error"
	case StatusInvalidArgument:
		return "invalid argument"
	default:
		return "unknown status"
	}
}

// statusFromError maps registry errors to status codes.
func statusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, cache.ErrCollectionNotFound):
		return StatusCollectionNotFound
	case errors.Is(err, cache.ErrKeyNotFound):
		return StatusKeyNotFound
	case errors.Is(err, cache.ErrTagMismatch):
		return StatusTagMismatch
	case errors.Is(err, cache.ErrEmbeddedNUL):
		return StatusInvalidArgument
	default:
		return StatusInternal
	}
}

// statusFromUpsert maps an upsert outcome to a status code.
func statusFromUpsert(r cache.UpsertResult) Status {
	switch r {
	case cache.UpsertInserted:
		return StatusInserted
	case cache.UpsertOverwritten:
		return StatusOverwritten
	case cache.UpsertRejected:
		return StatusInvalidArgument
	default:
		return StatusCollectionNotFound
	}
}
