package purefn

import "errors"

// Sentinel errors for pure-function wrapping.
var (
	// ErrNoIdentity is returned when wrapping with an empty identity.
	ErrNoIdentity = errors.New("lazycache/purefn: identity is empty")

	// ErrNilFunc is returned when wrapping a nil function.
	ErrNilFunc = errors.New("lazycache/purefn: function is nil")

	// ErrBadArgument is returned by argument hashers for arguments of the
	// wrong type.
	ErrBadArgument = errors.New("lazycache/purefn: bad argument")
)
