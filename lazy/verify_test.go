package lazy

import (
	"errors"
	"testing"

	"github.com/dagss/lazycache/hashing"
)

func TestVerify_CleanTree(t *testing.T) {
	x, err := Own([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	e := x.Add(4).Mul(x)
	if _, err := e.Digest(); err != nil {
		t.Fatal(err)
	}
	if err := Verify(e); err != nil {
		t.Errorf("Verify on untouched tree: %v", err)
	}
}

func TestVerify_DetectsMutation(t *testing.T) {
	raw := []float64{1, 2, 3}
	x, err := Own(raw)
	if err != nil {
		t.Fatal(err)
	}
	e := x.Add(4)
	if _, err := e.Digest(); err != nil {
		t.Fatal(err)
	}

	// Violate the trust-no-mutation promise.
	raw[0] = 99

	if err := Verify(e); !errors.Is(err, ErrPurityViolation) {
		t.Errorf("Verify after mutation = %v, want ErrPurityViolation", err)
	}
}

func TestVerify_SkipsUnownedAndOverridden(t *testing.T) {
	raw := []float64{1, 2, 3}
	wrapped := Wrap(raw)
	overridden := WithDigest([]float64{4}, hashing.Sum([]byte("x")))

	e := Add(wrapped, overridden)
	raw[0] = 99

	// Neither leaf carries an ownership promise, so nothing to verify.
	if err := Verify(e); err != nil {
		t.Errorf("Verify flagged unowned leaves: %v", err)
	}
}
