package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"reflect"
	"sort"
)

// Strategy computes a content digest for a value of a registered type.
//
// Contract:
// - Determinism: equal values must produce equal digests across processes.
// - Concurrency: strategies must be safe for concurrent use.
type Strategy func(value any) (Digest, error)

// Registry maps exact value types to hashing strategies.
//
// A structural fallback covers primitives and containers of primitives, so
// only opaque types (user structs, external handles) need registration.
// Registration happens at process start; concurrent registration during
// steady-state operation is not supported.
type Registry struct {
	strategies map[reflect.Type]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[reflect.Type]Strategy)}
}

// Register installs a strategy for the exact dynamic type of sample.
// Dispatch is by exact type, not by interface satisfaction.
func (r *Registry) Register(sample any, s Strategy) error {
	if s == nil {
		return ErrNilStrategy
	}
	r.strategies[reflect.TypeOf(sample)] = s
	return nil
}

// Registered reports whether the exact dynamic type of sample has a strategy.
func (r *Registry) Registered(sample any) bool {
	_, ok := r.strategies[reflect.TypeOf(sample)]
	return ok
}

// HashOf computes the content digest of value.
//
// Lookup order: registered strategy for the exact type, then the structural
// fallback. Returns ErrUnhashable when neither applies.
func (r *Registry) HashOf(value any) (Digest, error) {
	if value != nil {
		if s, ok := r.strategies[reflect.TypeOf(value)]; ok {
			return s(value)
		}
	}
	h := sha256.New()
	if err := r.encode(h, reflect.ValueOf(value)); err != nil {
		return Digest{}, err
	}
	var d Digest
	h.Sum(d[:0])
	return d, nil
}

// CanHash reports whether HashOf would succeed for value, without hashing it.
func (r *Registry) CanHash(value any) bool {
	_, err := r.HashOf(value)
	return err == nil
}

// Kind tags for the canonical structural encoding. Every encoded value is
// prefixed with its tag so values of different kinds never collide.
const (
	tagNil    = 'z'
	tagBool   = 'b'
	tagInt    = 'i'
	tagUint   = 'u'
	tagFloat  = 'f'
	tagString = 's'
	tagBytes  = 'y'
	tagSlice  = 'l'
	tagMap    = 'm'
	tagDigest = 'r'
)

func (r *Registry) encode(h hash.Hash, v reflect.Value) error {
	if !v.IsValid() {
		h.Write([]byte{tagNil})
		return nil
	}
	// Registered element types fold their strategy digest, so a slice of a
	// registered type hashes structurally without its own registration.
	if s, ok := r.strategies[v.Type()]; ok {
		d, err := s(v.Interface())
		if err != nil {
			return err
		}
		h.Write([]byte{tagDigest})
		h.Write(d[:])
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		b := byte(0)
		if v.Bool() {
			b = 1
		}
		h.Write([]byte{tagBool, b})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeTagged(h, tagInt, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeTagged(h, tagUint, v.Uint())
	case reflect.Float32, reflect.Float64:
		writeTagged(h, tagFloat, math.Float64bits(v.Float()))
	case reflect.String:
		s := v.String()
		writeTagged(h, tagString, uint64(len(s)))
		h.Write([]byte(s))
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			b := v.Bytes()
			writeTagged(h, tagBytes, uint64(len(b)))
			h.Write(b)
			return nil
		}
		writeTagged(h, tagSlice, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			if err := r.encode(h, deref(v.Index(i))); err != nil {
				return err
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrUnhashable, v.Type().Key())
		}
		// Sort keys so iteration order never leaks into the digest.
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		writeTagged(h, tagMap, uint64(len(keys)))
		for _, k := range keys {
			writeTagged(h, tagString, uint64(len(k)))
			h.Write([]byte(k))
			if err := r.encode(h, deref(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())))); err != nil {
				return err
			}
		}
	case reflect.Interface:
		if v.IsNil() {
			h.Write([]byte{tagNil})
			return nil
		}
		return r.encode(h, v.Elem())
	default:
		return fmt.Errorf("%w: %s", ErrUnhashable, v.Type())
	}
	return nil
}

// deref unwraps interface values; other values pass through. Pointers are
// deliberately not followed: a pointer target can be mutated behind the
// digest, so pointer types must be registered explicitly.
func deref(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
}

func writeTagged(h hash.Hash, tag byte, n uint64) {
	var buf [9]byte
	buf[0] = tag
	binary.BigEndian.PutUint64(buf[1:], n)
	h.Write(buf[:])
}

// IsNativeImmutable reports whether value is of a kind the engine treats as
// immutable by construction, allowing its digest to be taken eagerly without
// an ownership assertion. Containers are never native-immutable.
func IsNativeImmutable(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// defaultRegistry backs the package-level functions. Initialized at process
// start; Register mutates it explicitly and is not safe to call concurrently
// with steady-state hashing.
var defaultRegistry = NewRegistry()

// Register installs a strategy in the default registry.
func Register(sample any, s Strategy) error {
	return defaultRegistry.Register(sample, s)
}

// HashOf computes a digest using the default registry.
func HashOf(value any) (Digest, error) {
	return defaultRegistry.HashOf(value)
}

// CanHash reports whether the default registry can hash value.
func CanHash(value any) bool {
	return defaultRegistry.CanHash(value)
}

// Default returns the default registry.
func Default() *Registry {
	return defaultRegistry
}
