package lazy

import "errors"

// Sentinel errors for tree construction and evaluation.
var (
	// ErrUnknownOp is returned when an operator id has no registered Op.
	ErrUnknownOp = errors.New("lazycache/lazy: unknown operator")

	// ErrOpExists is returned when registering an operator id twice.
	ErrOpExists = errors.New("lazycache/lazy: operator already registered")

	// ErrBadOperand is returned by built-in operators for unsupported
	// operand type combinations.
	ErrBadOperand = errors.New("lazycache/lazy: unsupported operand types")

	// ErrShapeMismatch is returned by built-in operators when two vector
	// operands have different lengths.
	ErrShapeMismatch = errors.New("lazycache/lazy: vector length mismatch")

	// ErrPurityViolation is returned by Verify when an owned value no longer
	// matches the digest it was trusted under.
	ErrPurityViolation = errors.New("lazycache/lazy: owned value changed after hashing")
)
