package lazy

// Compute evaluates v to a concrete value. Expression trees are walked
// bottom-up; *Value unwraps to its raw value; anything else is returned as
// is, so Compute is safe to call on already-concrete values.
//
// Compute performs no caching: evaluating two structurally equal but
// distinct trees recomputes both. Failures from operator implementations
// propagate unchanged, without retries or masking.
func Compute(v any) (any, error) {
	switch n := v.(type) {
	case *Expr:
		return n.Compute()
	case *Value:
		return n.raw, nil
	default:
		return v, nil
	}
}

// Compute evaluates the subtree rooted at e.
//
// Within one call, a shared subnode (same instance reachable through
// multiple parents) is evaluated once; distinct instances are not unified
// even when structurally equal.
func (e *Expr) Compute() (any, error) {
	return e.compute(make(map[*Expr]any))
}

func (e *Expr) compute(memo map[*Expr]any) (any, error) {
	if e.leaf != nil {
		return e.leaf.raw, nil
	}
	if v, ok := memo[e]; ok {
		return v, nil
	}
	args := make([]any, len(e.children))
	for i, c := range e.children {
		v, err := c.compute(memo)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := e.op.Apply(args...)
	if err != nil {
		return nil, err
	}
	memo[e] = v
	return v, nil
}
