package lazy

import (
	"fmt"

	"github.com/dagss/lazycache/hashing"
)

// Verify re-hashes every owned, materialized leaf of the tree and compares
// against the digest taken when the leaf was wrapped. A mismatch means the
// trust-no-mutation assertion was violated after the digest was relied upon,
// and returns ErrPurityViolation.
//
// Best-effort: leaves whose digests were supplied directly (WithDigest) and
// deferred leaves are skipped, and a passing Verify does not prove the value
// never changed in between.
func Verify(e *Expr) error {
	leaves, _ := e.gather()
	for _, l := range leaves {
		v := l.leaf
		if !v.owned || !v.Materialized() {
			continue
		}
		d, err := hashing.HashOf(v.raw)
		if err != nil {
			// Value became unhashable after a digest was taken; treat as a
			// violated ownership promise rather than swallowing it.
			return fmt.Errorf("%w: %v", ErrPurityViolation, err)
		}
		if d != v.digest {
			return fmt.Errorf("%w: %s", ErrPurityViolation, shortRepr(v.raw))
		}
	}
	return nil
}
