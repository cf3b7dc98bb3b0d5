package store

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrImmutableResult is returned on any attempt to mutate a cached
	// result through its wrapper. It must never silently succeed.
	ErrImmutableResult = errors.New("lazycache/store: cached result is write-protected")

	// ErrNilNode is returned when a nil expression node is passed in.
	ErrNilNode = errors.New("lazycache/store: node is nil")

	// ErrClosed is returned by backends after Close.
	ErrClosed = errors.New("lazycache/store: backend is closed")
)
