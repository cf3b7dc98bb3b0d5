package lazy

import (
	"fmt"
	"sync"
)

// ApplyFunc executes an operator over already-evaluated operands.
type ApplyFunc func(args ...any) (any, error)

// Op identifies an operator and its implementation.
//
// ID is the stable identity folded into tree digests; two operators with the
// same ID are the same operator as far as any cache is concerned.
// Commutative operators have their child digests canonicalized (sorted) at
// digest time, so operand order does not affect the key; for every other
// operator, operand order is part of the key. Infix only affects display.
type Op struct {
	ID          string
	Apply       ApplyFunc
	Commutative bool
	Infix       bool
}

var (
	opMu  sync.RWMutex
	opSet = make(map[string]*Op)
)

// RegisterOp installs an operator. Registering an already-registered id
// returns ErrOpExists; built-in arithmetic is registered at process start.
func RegisterOp(op *Op) error {
	if op == nil || op.Apply == nil || op.ID == "" {
		return fmt.Errorf("%w: %+v", ErrBadOperand, op)
	}
	opMu.Lock()
	defer opMu.Unlock()
	if _, ok := opSet[op.ID]; ok {
		return fmt.Errorf("%w: %q", ErrOpExists, op.ID)
	}
	opSet[op.ID] = op
	return nil
}

// LookupOp returns the operator registered under id.
func LookupOp(id string) (*Op, bool) {
	opMu.RLock()
	defer opMu.RUnlock()
	op, ok := opSet[id]
	return op, ok
}

// Built-in arithmetic operators. Operand order is part of the digest for all
// of them: `a+b` and `b+a` are distinct keys, matching the source semantics
// where reversed application is a distinct construction.
var (
	OpAdd = &Op{ID: "+", Apply: numericBinop("+"), Infix: true}
	OpSub = &Op{ID: "-", Apply: numericBinop("-"), Infix: true}
	OpMul = &Op{ID: "*", Apply: numericBinop("*"), Infix: true}
	OpDiv = &Op{ID: "/", Apply: numericBinop("/"), Infix: true}
)

func init() {
	for _, op := range []*Op{OpAdd, OpSub, OpMul, OpDiv} {
		if err := RegisterOp(op); err != nil {
			panic(err)
		}
	}
}

// numericBinop builds the arithmetic kernel for one operator id. Supported
// operand kinds: integer scalars, float scalars and []float64 vectors, with
// scalar broadcast over vectors. Division always produces floats.
func numericBinop(id string) ApplyFunc {
	return func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %q wants 2 operands, got %d", ErrBadOperand, id, len(args))
		}
		return applyBinary(id, args[0], args[1])
	}
}

func applyBinary(id string, a, b any) (any, error) {
	av, aVec := asVector(a)
	bv, bVec := asVector(b)

	switch {
	case aVec && bVec:
		if len(av) != len(bv) {
			return nil, fmt.Errorf("%w: %q over lengths %d and %d", ErrShapeMismatch, id, len(av), len(bv))
		}
		out := make([]float64, len(av))
		for i := range av {
			v, err := scalarOp(id, av[i], bv[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case aVec:
		bs, ok := asFloat(b)
		if !ok {
			return nil, badOperands(id, a, b)
		}
		out := make([]float64, len(av))
		for i := range av {
			v, err := scalarOp(id, av[i], bs)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case bVec:
		as, ok := asFloat(a)
		if !ok {
			return nil, badOperands(id, a, b)
		}
		out := make([]float64, len(bv))
		for i := range bv {
			v, err := scalarOp(id, as, bv[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	// Scalar/scalar. Integer operands stay integral except under division.
	if ai, ok := asInt(a); ok {
		if bi, ok := asInt(b); ok && id != "/" {
			switch id {
			case "+":
				return ai + bi, nil
			case "-":
				return ai - bi, nil
			case "*":
				return ai * bi, nil
			}
		}
	}
	as, aok := asFloat(a)
	bs, bok := asFloat(b)
	if !aok || !bok {
		return nil, badOperands(id, a, b)
	}
	return scalarOp(id, as, bs)
}

func scalarOp(id string, a, b float64) (float64, error) {
	switch id {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, id)
}

func badOperands(id string, a, b any) error {
	return fmt.Errorf("%w: %q over %T and %T", ErrBadOperand, id, a, b)
}

func asVector(v any) ([]float64, bool) {
	f, ok := v.([]float64)
	return f, ok
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	if n, ok := asInt(v); ok {
		return float64(n), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
