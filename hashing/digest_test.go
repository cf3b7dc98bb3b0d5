package hashing

import (
	"strings"
	"testing"
)

func TestDigest_String(t *testing.T) {
	d := Sum([]byte("hello"))
	if len(d.String()) != Size*2 {
		t.Errorf("String() length = %d, want %d", len(d.String()), Size*2)
	}
	if !strings.HasPrefix(d.String(), d.Short()) {
		t.Errorf("Short() %q is not a prefix of String() %q", d.Short(), d.String())
	}
	if len(d.Short()) != 6 {
		t.Errorf("Short() length = %d, want 6", len(d.Short()))
	}
}

func TestDigest_IsZero(t *testing.T) {
	var zero Digest
	if !zero.IsZero() {
		t.Error("zero digest reported non-zero")
	}
	if Sum(nil).IsZero() {
		t.Error("Sum(nil) reported zero")
	}
}

// TestSum_Framing verifies that part boundaries are part of the digest.
func TestSum_Framing(t *testing.T) {
	if Sum([]byte("ab"), []byte("c")) == Sum([]byte("a"), []byte("bc")) {
		t.Error("Sum collides across part boundaries")
	}
	if Sum([]byte("abc")) == Sum([]byte("ab"), []byte("c")) {
		t.Error("Sum collides between one part and two")
	}
	if Sum([]byte("abc")) != Sum([]byte("abc")) {
		t.Error("Sum is not deterministic")
	}
}
