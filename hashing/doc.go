// Package hashing derives stable content digests for Go values.
//
// It provides a Digest type, a type-to-strategy Registry with a structural
// fallback for primitives and containers, and the native-immutable
// classification used to decide whether a value can be hashed eagerly.
package hashing
