package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of the given bytes. It is the hash used for
// dictionary keys and distinct-value sketch insertion, so both sides agree on
// one hash of the canonical value encoding.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumString computes the xxHash64 of the given string without copying.
func SumString(data string) uint64 {
	return xxhash.Sum64String(data)
}
