package lazy

import (
	"sync"

	"github.com/dagss/lazycache/hashing"
)

// Value pairs a raw value with a content digest and an ownership flag.
//
// The digest is either materialized or deferred. Native-immutable values and
// owned values are hashed eagerly; everything else is hashed lazily, at
// latest when first required by a tree digest or a cache lookup. Once
// materialized, the digest never changes.
//
// owned is a caller-asserted promise that the raw value will not be mutated
// after wrapping. The engine trusts it and never verifies it (but see Verify).
type Value struct {
	raw   any
	owned bool

	mu     sync.Mutex
	ready  bool
	digest hashing.Digest
}

// Wrap wraps a raw value without an ownership assertion.
//
// Native-immutable values are hashed immediately and treated as owned. For
// all other values the digest stays deferred; if the value turns out to be
// unhashable, the error surfaces when the digest is first required, not here.
func Wrap(v any) *Value {
	if hv, ok := v.(*Value); ok {
		return hv
	}
	hv := &Value{raw: v}
	if hashing.IsNativeImmutable(v) {
		hv.owned = true
		if d, err := hashing.HashOf(v); err == nil {
			hv.digest = d
			hv.ready = true
		}
	}
	return hv
}

// Own wraps a raw value with a trust-no-mutation assertion and hashes it
// eagerly. Mutating v after a successful Own, while its digest is relied
// upon by a tree or a cache, is undefined behavior for any cache built on
// top of that tree.
func Own(v any) (*Value, error) {
	if hv, ok := v.(*Value); ok {
		return hv, nil
	}
	d, err := hashing.HashOf(v)
	if err != nil {
		return nil, err
	}
	return &Value{raw: v, owned: true, digest: d, ready: true}, nil
}

// WithDigest wraps a raw value under a caller-supplied digest, bypassing the
// registry. Used for per-argument hashing overrides, where the digest is
// deliberately not a function of the value's content.
func WithDigest(v any, d hashing.Digest) *Value {
	return &Value{raw: v, digest: d, ready: true}
}

// Raw returns the wrapped value.
func (v *Value) Raw() any { return v.raw }

// Owned reports whether the caller asserted the value will not be mutated.
func (v *Value) Owned() bool { return v.owned }

// Materialized reports whether the digest has been computed.
func (v *Value) Materialized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

// Digest returns the content digest, materializing it on first use.
// Returns hashing.ErrUnhashable if the value has no strategy; the value
// stays deferred and usable until a digest is actually required.
func (v *Value) Digest() (hashing.Digest, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ready {
		return v.digest, nil
	}
	d, err := hashing.HashOf(v.raw)
	if err != nil {
		return hashing.Digest{}, err
	}
	v.digest = d
	v.ready = true
	return d, nil
}

// Expr lifts the value into a single-node expression tree.
func (v *Value) Expr() *Expr {
	return newLeaf(v)
}
