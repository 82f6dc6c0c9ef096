// Package cache provides the named collection registries behind the boundary.
// This package implements:
// - Tagged values holding either a float64 or a text string
// - A registry of named maps (key -> Value) and a registry of named sets
// - Name-sharded registries with a mutex per collection
package cache
