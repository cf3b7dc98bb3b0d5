package lazy

// Lift coerces an operand into an expression node. *Expr passes through,
// *Value becomes a leaf, and any raw value is wrapped (deferred hashing)
// first. This is the single coercion point: once any operand of an
// operation is a tree, its siblings travel through here, so wrapped and raw
// construction paths share one hashing code path.
func Lift(v any) *Expr {
	switch n := v.(type) {
	case *Expr:
		return n
	case *Value:
		return newLeaf(n)
	default:
		return newLeaf(Wrap(v))
	}
}

// Apply builds an interior node applying op to the given operands, coercing
// raw operands to leaves. No algebraic simplification or reordering is
// performed.
func Apply(op *Op, operands ...any) *Expr {
	children := make([]*Expr, len(operands))
	for i, o := range operands {
		children[i] = Lift(o)
	}
	return newInterior(op, children)
}

// ApplyID is Apply with an operator id resolved through the registry.
func ApplyID(id string, operands ...any) (*Expr, error) {
	op, ok := LookupOp(id)
	if !ok {
		return nil, ErrUnknownOp
	}
	return Apply(op, operands...), nil
}

// Binary construction helpers. Each accepts *Expr, *Value or raw operands
// on either side, so reversed application (raw on the left) needs no
// special casing.

// Add builds a+b.
func Add(a, b any) *Expr { return Apply(OpAdd, a, b) }

// Sub builds a-b.
func Sub(a, b any) *Expr { return Apply(OpSub, a, b) }

// Mul builds a*b.
func Mul(a, b any) *Expr { return Apply(OpMul, a, b) }

// Div builds a/b.
func Div(a, b any) *Expr { return Apply(OpDiv, a, b) }

// Add builds e+other.
func (e *Expr) Add(other any) *Expr { return Add(e, other) }

// Sub builds e-other.
func (e *Expr) Sub(other any) *Expr { return Sub(e, other) }

// Mul builds e*other.
func (e *Expr) Mul(other any) *Expr { return Mul(e, other) }

// Div builds e/other.
func (e *Expr) Div(other any) *Expr { return Div(e, other) }

// Expression-building helpers on Value mirror the Expr methods, so a
// wrapped input can start a tree directly.

// Add builds v+other.
func (v *Value) Add(other any) *Expr { return Add(v, other) }

// Sub builds v-other.
func (v *Value) Sub(other any) *Expr { return Sub(v, other) }

// Mul builds v*other.
func (v *Value) Mul(other any) *Expr { return Mul(v, other) }

// Div builds v/other.
func (v *Value) Div(other any) *Expr { return Div(v, other) }
