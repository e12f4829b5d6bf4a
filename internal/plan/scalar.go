package plan

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/table"
)

// Scalar is one typed column value, used for min/max extremes in statistics
// chunks. The populated field depends on Kind.
type Scalar struct {
	Kind format.PhysicalType
	I    int64   // Bool (0/1), Int32, Int64, Timestamp (microseconds)
	F    float64 // Float32, Float64
	S    string  // String
}

// Less reports whether a orders before b. Both scalars must share the same
// kind; mixed comparisons never occur because statistics are per column.
func (a Scalar) Less(b Scalar) bool {
	switch a.Kind {
	case format.TypeFloat32, format.TypeFloat64:
		return a.F < b.F
	case format.TypeString:
		return a.S < b.S
	default:
		return a.I < b.I
	}
}

// scalarAt extracts the value at row as a Scalar. The second result is false
// for values excluded from extremes: nulls, and float NaN (NaN has no place
// in an ordering; it still counts as a value and feeds the distinct sketch).
func scalarAt(col *table.Column, row int) (Scalar, bool) {
	if col.IsNull(row) {
		return Scalar{}, false
	}

	s := Scalar{Kind: col.Type()}
	switch col.Type() {
	case format.TypeBool:
		if col.Bools()[row] {
			s.I = 1
		}
	case format.TypeInt32:
		s.I = int64(col.Int32s()[row])
	case format.TypeInt64:
		s.I = col.Int64s()[row]
	case format.TypeFloat32:
		s.F = float64(col.Float32s()[row])
		if math.IsNaN(s.F) {
			return Scalar{}, false
		}
	case format.TypeFloat64:
		s.F = col.Float64s()[row]
		if math.IsNaN(s.F) {
			return Scalar{}, false
		}
	case format.TypeString:
		s.S = col.Strings()[row]
	case format.TypeTimestamp:
		s.I = col.TimestampMicros()[row]
	}

	return s, true
}

// Encode appends the canonical little-endian encoding of the scalar, the
// representation stored for min/max in footer statistics records.
func (a Scalar) Encode(dst []byte) []byte {
	switch a.Kind {
	case format.TypeBool:
		if a.I != 0 {
			return append(dst, 1)
		}

		return append(dst, 0)
	case format.TypeInt32:
		return binary.LittleEndian.AppendUint32(dst, uint32(int32(a.I)))
	case format.TypeFloat32:
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(a.F)))
	case format.TypeFloat64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(a.F))
	case format.TypeString:
		return append(dst, a.S...)
	default: // Int64, Timestamp
		return binary.LittleEndian.AppendUint64(dst, uint64(a.I))
	}
}

// AppendValueKey appends the canonical byte key of the value at row.
//
// The key doubles as the dictionary value encoding and the distinct-sketch
// input, so both observe the same identity: bit-identical values share a
// key, anything else does not. Keys are always little-endian regardless of
// the session's payload byte order.
func AppendValueKey(dst []byte, col *table.Column, row int) []byte {
	switch col.Type() {
	case format.TypeBool:
		if col.Bools()[row] {
			return append(dst, 1)
		}

		return append(dst, 0)
	case format.TypeInt32:
		return binary.LittleEndian.AppendUint32(dst, uint32(col.Int32s()[row]))
	case format.TypeInt64:
		return binary.LittleEndian.AppendUint64(dst, uint64(col.Int64s()[row]))
	case format.TypeFloat32:
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(col.Float32s()[row]))
	case format.TypeFloat64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(col.Float64s()[row]))
	case format.TypeString:
		return append(dst, col.Strings()[row]...)
	case format.TypeTimestamp:
		return binary.LittleEndian.AppendUint64(dst, uint64(col.TimestampMicros()[row]))
	default:
		return dst
	}
}
