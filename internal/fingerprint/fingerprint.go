// Package fingerprint computes bounded-prefix content hashes used for
// duplicate detection.
//
// The fingerprint covers at most the first MiB of a file, keeping the cost
// per file constant regardless of file size. Two files that agree on their
// first MiB fingerprint identically even if they diverge later; the catalog
// treats such collisions as true duplicates.
package fingerprint

import (
	"fmt"
	"io"
	"os"

	"github.com/OneOfOne/xxhash"

	"github.com/handiism/audiodex/internal/model"
)

// PrefixSize is the maximum number of bytes hashed per file.
const PrefixSize = 1 << 20

// Hash fingerprints the file at path.
//
// It reads at most PrefixSize bytes, hashes them with xxhash64 and returns
// the 16-character lowercase hex digest. The result depends only on the
// file's leading bytes, never on its path, OS or file system.
//
// On any I/O error Hash returns model.UnknownHash instead of failing;
// fingerprinting must never abort a scan.
func Hash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return model.UnknownHash
	}
	defer f.Close()

	h := xxhash.New64()
	if _, err := io.Copy(h, io.LimitReader(f, PrefixSize)); err != nil {
		return model.UnknownHash
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
