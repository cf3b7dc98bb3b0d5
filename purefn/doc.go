// Package purefn wraps caller-declared pure functions for use in
// content-addressed expression trees.
//
// A wrapped function's cache identity is its declared name plus a version
// number, never its implementation: bumping the version is the one sanctioned
// way to invalidate cached results. Per-argument hashing overrides let
// externally-effectful inputs (file paths, handles) contribute a digest that
// is deliberately not a function of their content.
//
// Correctness of the purity claim is the caller's obligation; nothing here
// detects non-determinism.
package purefn
