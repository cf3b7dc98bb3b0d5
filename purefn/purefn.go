package purefn

import (
	"fmt"

	"github.com/dagss/lazycache/hashing"
	"github.com/dagss/lazycache/lazy"
)

// ArgHasher supersedes the registry lookup for one argument position.
type ArgHasher func(arg any) (hashing.Digest, error)

// Spec declares the cache identity of a pure function.
//
// Identity should be a stable qualified name ("pkg.Func"); Version is bumped
// by the caller whenever the function's observable behavior changes, which
// invalidates all prior cache entries for it. ArgHashers maps argument
// positions to hashing overrides applied when a raw argument at that
// position is coerced into a tree; pre-wrapped arguments keep their own
// digests.
type Spec struct {
	Identity   string
	Version    int
	ArgHashers map[int]ArgHasher
}

// Func is a wrapped pure function. Immutable once built.
type Func struct {
	spec Spec
	fn   func(args ...any) (any, error)
	op   *lazy.Op
}

// Wrap builds a Func from a spec and a variadic implementation.
//
// The resulting operator id folds Identity and Version, so two wrappings of
// the same spec produce interchangeable tree digests while differing
// versions never share a cache key. The operator is not entered into the
// global operator registry; it travels with the nodes it builds.
func Wrap(spec Spec, fn func(args ...any) (any, error)) (*Func, error) {
	if spec.Identity == "" {
		return nil, ErrNoIdentity
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	// Copy the override map so later caller mutation cannot change the spec.
	if spec.ArgHashers != nil {
		hashers := make(map[int]ArgHasher, len(spec.ArgHashers))
		for i, h := range spec.ArgHashers {
			hashers[i] = h
		}
		spec.ArgHashers = hashers
	}
	return &Func{
		spec: spec,
		fn:   fn,
		op: &lazy.Op{
			ID:    fmt.Sprintf("call:%s@v%d", spec.Identity, spec.Version),
			Apply: fn,
		},
	}, nil
}

// Identity returns the declared identity.
func (f *Func) Identity() string { return f.spec.Identity }

// Version returns the declared version.
func (f *Func) Version() int { return f.spec.Version }

// OpID returns the operator id folded into tree digests.
func (f *Func) OpID() string { return f.op.ID }

// Call applies the function to the given arguments.
//
// With at least one *lazy.Expr or *lazy.Value argument, Call builds an
// opaque tree node and returns it without executing; raw sibling arguments
// are coerced through their ArgHashers override, or the default registry
// when none is set. With only raw arguments there is no tree context and
// the function is invoked immediately.
func (f *Func) Call(args ...any) (any, error) {
	if !hasTreeContext(args) {
		return f.fn(args...)
	}
	node, err := f.Defer(args...)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Defer always builds the opaque node, even without tree-context arguments.
func (f *Func) Defer(args ...any) (*lazy.Expr, error) {
	operands := make([]any, len(args))
	for i, a := range args {
		switch a.(type) {
		case *lazy.Expr, *lazy.Value:
			operands[i] = a
			continue
		}
		if h, ok := f.spec.ArgHashers[i]; ok {
			d, err := h(a)
			if err != nil {
				return nil, fmt.Errorf("lazycache/purefn: hashing argument %d of %s: %w", i, f.spec.Identity, err)
			}
			operands[i] = lazy.WithDigest(a, d)
			continue
		}
		operands[i] = a
	}
	return lazy.Apply(f.op, operands...), nil
}

func hasTreeContext(args []any) bool {
	for _, a := range args {
		switch a.(type) {
		case *lazy.Expr, *lazy.Value:
			return true
		}
	}
	return false
}
