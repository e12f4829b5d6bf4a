// Package encode implements the page-payload encoders driven by the batch
// encoder: plain values, dictionary indices, validity bitmaps and dictionary
// page values.
//
// Encoders follow one lifecycle: write values, take Bytes, Reset for the
// next page. They are not safe for concurrent use; the batch encoder owns
// one set per column chunk.
package encode

import (
	"math"

	"github.com/arloliu/strata/endian"
	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/table"
)

// PlainEncoder appends column values in their fixed-width binary form, or
// length-prefixed for strings. Null rows are skipped entirely; their
// positions are carried by the validity bitmap.
type PlainEncoder struct {
	engine endian.EndianEngine
	buf    []byte
	count  int
}

// NewPlainEncoder creates a plain value encoder using the given byte order.
func NewPlainEncoder(engine endian.EndianEngine) *PlainEncoder {
	return &PlainEncoder{engine: engine}
}

// WriteColumn encodes the non-null values of rows [start, start+numRows).
//
// tsDiv divides timestamp values before encoding: 1 for microsecond
// resolution, 1e6 when the session uses the alternate second-resolution
// timestamp representation.
func (e *PlainEncoder) WriteColumn(col *table.Column, start, numRows int, tsDiv int64) {
	end := start + numRows

	switch col.Type() {
	case format.TypeBool:
		vals := col.Bools()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			b := byte(0)
			if vals[row] {
				b = 1
			}
			e.buf = append(e.buf, b)
			e.count++
		}
	case format.TypeInt32:
		vals := col.Int32s()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			e.buf = e.engine.AppendUint32(e.buf, uint32(vals[row]))
			e.count++
		}
	case format.TypeInt64:
		vals := col.Int64s()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			e.buf = e.engine.AppendUint64(e.buf, uint64(vals[row]))
			e.count++
		}
	case format.TypeFloat32:
		vals := col.Float32s()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			e.buf = e.engine.AppendUint32(e.buf, math.Float32bits(vals[row]))
			e.count++
		}
	case format.TypeFloat64:
		vals := col.Float64s()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			e.buf = e.engine.AppendUint64(e.buf, math.Float64bits(vals[row]))
			e.count++
		}
	case format.TypeString:
		vals := col.Strings()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			e.buf = e.engine.AppendUint32(e.buf, uint32(len(vals[row])))
			e.buf = append(e.buf, vals[row]...)
			e.count++
		}
	case format.TypeTimestamp:
		vals := col.TimestampMicros()
		for row := start; row < end; row++ {
			if col.IsNull(row) {
				continue
			}
			e.buf = e.engine.AppendUint64(e.buf, uint64(vals[row]/tsDiv))
			e.count++
		}
	}
}

// Bytes returns the encoded payload accumulated so far.
func (e *PlainEncoder) Bytes() []byte { return e.buf }

// Len returns the count of values encoded since the last Reset.
func (e *PlainEncoder) Len() int { return e.count }

// Size returns the byte size of the encoded payload.
func (e *PlainEncoder) Size() int { return len(e.buf) }

// Reset clears the encoder for the next page, retaining buffer capacity.
func (e *PlainEncoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
}
