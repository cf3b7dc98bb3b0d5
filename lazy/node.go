package lazy

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dagss/lazycache/hashing"
)

// Construction-order stamps. Display numbers inputs and program steps by
// stamp so output follows the order the tree was built in.
var exprStamp atomic.Uint64

// Expr is a node in a content-addressed expression tree: either a leaf
// holding a Value, or an interior node holding an operator and its ordered
// children. Nodes are immutable after construction apart from digest
// memoization, so read-sharing across goroutines is safe.
//
// The digest of an interior node is a pure function of the operator id and
// the children's digests, in operand order. Two nodes with equal digests are
// interchangeable cache keys regardless of construction path.
type Expr struct {
	leaf     *Value
	op       *Op
	children []*Expr
	stamp    uint64

	once      sync.Once
	digest    hashing.Digest
	digestErr error
}

func newLeaf(v *Value) *Expr {
	return &Expr{leaf: v, stamp: exprStamp.Add(1)}
}

func newInterior(op *Op, children []*Expr) *Expr {
	return &Expr{op: op, children: children, stamp: exprStamp.Add(1)}
}

// IsLeaf reports whether the node wraps a Value rather than an operation.
func (e *Expr) IsLeaf() bool { return e.leaf != nil }

// Value returns the wrapped Value for leaf nodes, nil otherwise.
func (e *Expr) Value() *Value { return e.leaf }

// Op returns the operator for interior nodes, nil for leaves.
func (e *Expr) Op() *Op { return e.op }

// Children returns the ordered child nodes. The returned slice is shared;
// callers must not modify it.
func (e *Expr) Children() []*Expr { return e.children }

// Digest returns the structural digest of the subtree rooted at e,
// computing and memoizing it on first use. A deferred leaf is forced here;
// if any contributing leaf is unhashable the error is memoized and returned
// on every call.
func (e *Expr) Digest() (hashing.Digest, error) {
	if e.leaf != nil {
		return e.leaf.Digest()
	}
	e.once.Do(func() {
		parts := make([][]byte, 0, len(e.children)+2)
		parts = append(parts, []byte("expr"), []byte(e.op.ID))
		childDigests := make([][]byte, 0, len(e.children))
		for _, c := range e.children {
			d, err := c.Digest()
			if err != nil {
				e.digestErr = err
				return
			}
			cd := d
			childDigests = append(childDigests, cd[:])
		}
		// Commutative operators canonicalize at digest time only; the
		// children keep construction order for evaluation and display.
		if e.op.Commutative {
			sort.Slice(childDigests, func(i, j int) bool {
				return string(childDigests[i]) < string(childDigests[j])
			})
		}
		e.digest = hashing.Sum(append(parts, childDigests...)...)
	})
	return e.digest, e.digestErr
}

// Stamp returns the global construction-order stamp of the node.
func (e *Expr) Stamp() uint64 { return e.stamp }
