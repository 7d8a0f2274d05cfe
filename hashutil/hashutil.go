// Package hashutil provides the BLAKE3 hashing helpers the selection
// engine uses to turn each relative path into its decision-cache key. Trimmed from kai-core/cas to the hashing primitives
// only — no canonical-JSON or content-addressed-node helpers, since this
// repo persists nothing.
package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Hash computes a BLAKE3 hash of data and returns it as bytes.
func Hash(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// HashHex computes a BLAKE3 hash of data and returns it hex-encoded.
func HashHex(data []byte) string {
	return hex.EncodeToString(Hash(data))
}

// NewHasher returns a new streaming BLAKE3 hasher for fingerprinting
// content incrementally. No package in this module calls it.
func NewHasher() *blake3.Hasher {
	return blake3.New(32, nil)
}
