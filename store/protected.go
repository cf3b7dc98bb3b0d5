package store

import (
	"fmt"
	"reflect"

	"github.com/dagss/lazycache/hashing"
)

// Protected is a write-protected cached result.
//
// The wrapped value is never handed out by reference: Value returns the raw
// value for immutable kinds and a deep defensive copy for aliasing kinds
// (slices, maps, pointers), so mutating what Value returns cannot corrupt
// the cache. Set always fails. The *Protected instance itself is
// reference-stable: repeated cache hits for one key return the same
// instance, so identity comparisons of cached results succeed.
type Protected struct {
	digest hashing.Digest
	value  any
}

func newProtected(d hashing.Digest, v any) *Protected {
	return &Protected{digest: d, value: v}
}

// Digest returns the cache key the result was stored under.
func (p *Protected) Digest() hashing.Digest { return p.digest }

// Value returns the cached result. Aliasing kinds come back as deep
// defensive copies; the stored value is unreachable through them.
func (p *Protected) Value() any {
	return defensiveCopy(p.value)
}

// Set rejects in-place replacement of the cached result.
func (p *Protected) Set(any) error {
	return ErrImmutableResult
}

// String renders a short digest prefix and the value's type.
func (p *Protected) String() string {
	return fmt.Sprintf("<cached %s %T>", p.digest.Short(), p.value)
}

// raw exposes the stored value without copying, for in-package use only.
func (p *Protected) raw() any { return p.value }

// defensiveCopy deep-copies the aliasing parts of v. Scalars, strings and
// plain structs pass through by value. Unexported struct fields are copied
// as part of the enclosing value but not descended into.
func defensiveCopy(v any) any {
	if v == nil {
		return nil
	}
	return copyValue(reflect.ValueOf(v)).Interface()
}

func copyValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(copyValue(v.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(copyValue(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}
		return out
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(copyValue(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(copyValue(v.Elem()))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if out.Field(i).CanSet() {
				out.Field(i).Set(copyValue(v.Field(i)))
			}
		}
		return out
	default:
		return v
	}
}
