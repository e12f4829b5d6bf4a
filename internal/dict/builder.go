// Package dict builds per-column-chunk dictionaries keyed by xxHash64 of the
// canonical value encoding.
//
// The builder detects hash collisions (different value bytes, same hash) and
// reports them to the caller, which falls back to plain encoding for the
// whole chunk. Collisions are vanishingly rare for 64-bit hashes but a
// dictionary written after one would silently conflate two values, so the
// fallback is mandatory rather than best-effort.
package dict

import (
	"bytes"

	"github.com/arloliu/strata/internal/hash"
)

// Builder accumulates distinct values for one column chunk and assigns each
// a stable index in first-seen order. Indices are the values written to the
// chunk's data pages; the value bytes are written to its dictionary page.
type Builder struct {
	index    map[uint64]uint32
	values   [][]byte
	byteSize int64
}

// NewBuilder creates an empty dictionary builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[uint64]uint32),
	}
}

// Add inserts the canonical value encoding and returns its dictionary index.
//
// The key slice is copied when first seen, so callers may reuse a scratch
// buffer between calls.
//
// Returns:
//   - uint32: Dictionary index of the value
//   - bool: false when a hash collision was detected; the chunk must fall
//     back to plain encoding and the builder must be discarded
func (b *Builder) Add(key []byte, cost int) (uint32, bool) {
	h := hash.Sum(key)
	if idx, ok := b.index[h]; ok {
		if !bytes.Equal(b.values[idx], key) {
			return 0, false
		}

		return idx, true
	}

	idx := uint32(len(b.values))
	b.values = append(b.values, append([]byte(nil), key...))
	b.index[h] = idx
	b.byteSize += int64(cost)

	return idx, true
}

// Index returns the dictionary index previously assigned to the value.
func (b *Builder) Index(key []byte) (uint32, bool) {
	idx, ok := b.index[hash.Sum(key)]
	return idx, ok
}

// Len returns the dictionary cardinality.
func (b *Builder) Len() int {
	return len(b.values)
}

// ByteSize returns the accumulated encoded size of the dictionary values.
// It is the size gate checked against the target page size while building.
func (b *Builder) ByteSize() int64 {
	return b.byteSize
}

// Values returns the dictionary values in index order.
func (b *Builder) Values() [][]byte {
	return b.values
}
