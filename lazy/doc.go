// Package lazy builds content-addressed expression trees over hashed values.
//
// A Value pairs a raw Go value with a content digest and an ownership flag.
// Operators applied to values build Expr trees instead of computing; every
// node carries a structural digest derived from its operator and the digests
// of its children, so structurally equal trees converge to the same digest
// regardless of how they were constructed. Compute walks a tree and produces
// the concrete result without consulting any cache.
package lazy
