// Package hashutil produces hex digests of one or more stringified values.
package hashutil

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
)

// Hasher renders each value with fmt.Sprint and returns a hex digest of the
// concatenation. SHA1 and SHA256 are the two implementations.
type Hasher func(values ...any) string

// SHA1 returns the SHA-1 hex digest of the stringified values.
func SHA1(values ...any) string {
	return digest(sha1.New(), values)
}

// SHA256 returns the SHA-256 hex digest of the stringified values.
func SHA256(values ...any) string {
	return digest(sha256.New(), values)
}

func digest(h hash.Hash, values []any) string {
	for _, v := range values {
		fmt.Fprint(h, v)
	}
	return hex.EncodeToString(h.Sum(nil))
}
