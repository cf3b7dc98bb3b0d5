package lazy

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Display output. The format is deterministic for a given tree but carries
// no compatibility contract; it exists for debugging and logs. Leaves render
// as `<lazy 31f889 value>`; interior nodes render a program listing with
// inputs and steps numbered in construction order. Deferred digests render
// as `deferred`.

const inlineStringMax = 10

func shouldInline(v any) bool {
	if s, ok := v.(string); ok {
		return len(s) <= inlineStringMax
	}
	return IsInlineDisplayable(v)
}

// IsInlineDisplayable reports whether a value is rendered inline in program
// listings rather than being assigned an input name.
func IsInlineDisplayable(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// shortRepr summarizes a value without dumping its contents.
func shortRepr(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("%T(len=%d)", v, rv.Len())
	case reflect.Map:
		return fmt.Sprintf("%T(len=%d)", v, rv.Len())
	case reflect.String:
		return fmt.Sprintf("%q", v)
	case reflect.Invalid:
		return "nil"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// digestLabel renders the short digest of a node, or "deferred" when the
// digest cannot (yet) be materialized.
func digestLabel(e *Expr) string {
	d, err := e.Digest()
	if err != nil {
		return "deferred"
	}
	return d.Short()
}

// String renders the value as a single-node tree.
func (v *Value) String() string {
	return newLeaf(v).String()
}

// String renders the node. Leaves render on one line; interior nodes render
// the full input/program listing.
func (e *Expr) String() string {
	if e.leaf != nil {
		return fmt.Sprintf("<lazy %s %s>", digestLabel(e), shortRepr(e.leaf.raw))
	}

	leaves, interiors := e.gather()
	names := make(map[*Expr]string)

	var b strings.Builder
	fmt.Fprintf(&b, "<lazy %s\n", digestLabel(e))
	b.WriteString("  input:\n")
	idx := 0
	for _, l := range leaves {
		if shouldInline(l.leaf.raw) {
			continue
		}
		names[l] = fmt.Sprintf("v%d", idx)
		idx++
		fmt.Fprintf(&b, "    %s: %s %s\n", names[l], digestLabel(l), shortRepr(l.leaf.raw))
	}
	b.WriteString("  program:\n")
	for i, n := range interiors {
		names[n] = fmt.Sprintf("e%d", i)
		args := make([]string, len(n.children))
		for j, c := range n.children {
			if name, ok := names[c]; ok {
				args[j] = name
			} else {
				args[j] = shortRepr(c.leaf.raw)
			}
		}
		fmt.Fprintf(&b, "    %s: %s %s\n", names[n], digestLabel(n), formatStep(n.op, args))
	}
	b.WriteString(">")
	return b.String()
}

// gather collects the distinct leaves and interior nodes of the subtree in
// construction-stamp order, children before parents.
func (e *Expr) gather() (leaves, interiors []*Expr) {
	seen := make(map[*Expr]bool)
	var walk func(n *Expr)
	walk = func(n *Expr) {
		if seen[n] {
			return
		}
		seen[n] = true
		if n.leaf != nil {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
		interiors = append(interiors, n)
	}
	walk(e)

	sortByStamp(leaves)
	sortByStamp(interiors)
	return leaves, interiors
}

func sortByStamp(nodes []*Expr) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].stamp < nodes[j].stamp })
}

func formatStep(op *Op, args []string) string {
	if op.Infix {
		return "(" + strings.Join(args, " "+op.ID+" ") + ")"
	}
	return op.ID + "(" + strings.Join(args, ", ") + ")"
}
