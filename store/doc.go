// Package store provides a content-addressed cache for expression trees.
//
// A Store keys cached results by the structural digest of a tree, computes
// each key at most once (concurrent callers for the same key share a single
// in-flight evaluation), and returns results wrapped in a write-protected
// form that rejects in-place mutation. Storage is pluggable through the
// Backend interface, with in-memory and BadgerDB implementations.
package store
