package lazy

import (
	"regexp"
	"strings"
	"testing"
)

func TestString_Leaf(t *testing.T) {
	v, err := Own([]float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	got := v.String()
	if m, _ := regexp.MatchString(`^<lazy [0-9a-f]{6} \[\]float64\(len=3\)>$`, got); !m {
		t.Errorf("leaf rendering = %q", got)
	}
}

func TestString_Program(t *testing.T) {
	x, _ := Own([]float64{1, 1, 1})
	y, _ := Own([]float64{1, 1, 1})
	e := x.Add(y).Mul(4)

	got := e.String()
	for _, want := range []string{"input:", "program:", "v0:", "(v0 + v1)", "e0", "* 4)"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendering missing %q:\n%s", want, got)
		}
	}

	// Equal inputs are distinct leaves and get distinct names.
	if !strings.Contains(got, "v1:") {
		t.Errorf("second input not numbered:\n%s", got)
	}

	// Deterministic.
	if e.String() != got {
		t.Error("rendering is not deterministic")
	}
}

func TestString_DeferredLeaf(t *testing.T) {
	e := Add(Wrap(make(chan int)), 1)
	if !strings.Contains(e.String(), "deferred") {
		t.Errorf("unresolved digest not rendered as deferred:\n%s", e.String())
	}
}

func TestString_InlineScalars(t *testing.T) {
	e := Add([]float64{1}, 4)
	got := e.String()
	// The scalar is inlined, not listed as an input.
	if strings.Contains(got, "v1") {
		t.Errorf("scalar operand was assigned an input name:\n%s", got)
	}
	if !strings.Contains(got, "(v0 + 4)") {
		t.Errorf("scalar operand not inlined:\n%s", got)
	}

	// Long strings are summarized as inputs instead of inlined.
	long := Add(strings.Repeat("a", 40), "b")
	if !strings.Contains(long.String(), "v0:") {
		t.Errorf("long string was inlined:\n%s", long.String())
	}
}
