package purefn

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dagss/lazycache/hashing"
)

// PathModTime is an ArgHasher for path-like arguments. It digests the
// canonical absolute path together with the file's modification time, not
// the file contents: touching the file invalidates downstream cache keys,
// while rewriting it with the timestamp preserved does not. The file must
// exist when the tree is built.
func PathModTime(arg any) (hashing.Digest, error) {
	p, ok := arg.(string)
	if !ok {
		return hashing.Digest{}, fmt.Errorf("%w: want path string, got %T", ErrBadArgument, arg)
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return hashing.Digest{}, fmt.Errorf("lazycache/purefn: canonicalizing %q: %w", p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return hashing.Digest{}, fmt.Errorf("lazycache/purefn: stat %q: %w", abs, err)
	}
	var mtime [8]byte
	binary.BigEndian.PutUint64(mtime[:], uint64(info.ModTime().UnixNano()))
	return hashing.Sum([]byte("path-mtime"), []byte(abs), mtime[:]), nil
}
