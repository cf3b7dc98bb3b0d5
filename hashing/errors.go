package hashing

import "errors"

// Sentinel errors for hashing operations.
var (
	// ErrUnhashable is returned when a value has no registered strategy and
	// no structural encoding. It is raised at the point a digest is required,
	// never eagerly at wrap time.
	ErrUnhashable = errors.New("lazycache/hashing: no hashing strategy for value")

	// ErrNilStrategy is returned when registering a nil strategy.
	ErrNilStrategy = errors.New("lazycache/hashing: strategy is nil")
)
