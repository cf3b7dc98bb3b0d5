package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Size is the length of a Digest in bytes.
const Size = sha256.Size

// Digest is a SHA-256 content digest.
type Digest [Size]byte

// String returns the full lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first six hex characters, used in display output.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:3])
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Sum computes a digest over the given parts. Each part is length-prefixed
// so that concatenation boundaries are part of the digest; Sum(a, b) and
// Sum(ab) never collide.
func Sum(parts ...[]byte) Digest {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}
