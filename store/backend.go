package store

import "context"

// Backend is the pluggable storage behind a Store.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Keys: opaque digest strings; backends never interpret them.
// - Errors: Get returns (nil, false, nil) on miss; Delete is idempotent.
//
// Entries are never mutated after a successful PutIfAbsent; eviction is a
// backend policy, surfaced through backend-specific notification options.
type Backend interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (any, bool, error)

	// PutIfAbsent stores value under key unless the key is already present,
	// in which case it is a no-op.
	PutIfAbsent(ctx context.Context, key string, value any) error

	// Delete removes the value stored under key. No error on miss.
	Delete(ctx context.Context, key string) error
}
