package cache

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors for registry lookups
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrKeyNotFound        = errors.New("key not found")
	ErrTagMismatch        = errors.New("value tag mismatch")
	ErrEmbeddedNUL        = errors.New("embedded NUL byte")
)

// HasNUL reports whether s contains a NUL byte. Such strings cannot be handed
// out as C strings without truncation, so the registries refuse to store them.
func HasNUL(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// TagMismatchError is returned when a typed accessor reads a value of the other kind.
type TagMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", ErrTagMismatch, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrTagMismatch.
func (e *TagMismatchError) Unwrap() error {
	return ErrTagMismatch
}
