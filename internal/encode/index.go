package encode

import (
	"github.com/arloliu/strata/endian"
)

// IndexWidth returns the byte width used to store dictionary indices for the
// given cardinality: 1, 2 or 4 bytes.
func IndexWidth(cardinality int) int {
	switch {
	case cardinality <= 1<<8:
		return 1
	case cardinality <= 1<<16:
		return 2
	default:
		return 4
	}
}

// IndexEncoder appends dictionary indices at a fixed byte width decided by
// the chunk's dictionary cardinality.
type IndexEncoder struct {
	engine endian.EndianEngine
	buf    []byte
	width  int
	count  int
}

// NewIndexEncoder creates an index encoder with the given index width.
func NewIndexEncoder(engine endian.EndianEngine, width int) *IndexEncoder {
	return &IndexEncoder{engine: engine, width: width}
}

// Write appends one dictionary index.
func (e *IndexEncoder) Write(idx uint32) {
	switch e.width {
	case 1:
		e.buf = append(e.buf, byte(idx))
	case 2:
		e.buf = e.engine.AppendUint16(e.buf, uint16(idx))
	default:
		e.buf = e.engine.AppendUint32(e.buf, idx)
	}
	e.count++
}

// Bytes returns the encoded payload accumulated so far.
func (e *IndexEncoder) Bytes() []byte { return e.buf }

// Len returns the count of indices encoded since the last Reset.
func (e *IndexEncoder) Len() int { return e.count }

// Size returns the byte size of the encoded payload.
func (e *IndexEncoder) Size() int { return len(e.buf) }

// Reset clears the encoder for the next page, retaining buffer capacity.
func (e *IndexEncoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
}
