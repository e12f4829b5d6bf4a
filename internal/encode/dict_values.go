package encode

import (
	"encoding/binary"

	"github.com/arloliu/strata/endian"
	"github.com/arloliu/strata/format"
)

// AppendDictValues appends a dictionary page payload: the chunk's distinct
// values in index order, plain-encoded.
//
// Dictionary values arrive as canonical little-endian keys from the
// dictionary builder. Fixed-width values are re-encoded through the session
// engine (a copy when the engine is little-endian too), strings gain their
// length prefix, and timestamps are divided by tsDiv to match the data-page
// representation.
func AppendDictValues(
	dst []byte,
	values [][]byte,
	typ format.PhysicalType,
	engine endian.EndianEngine,
	tsDiv int64,
) []byte {
	for _, key := range values {
		switch typ {
		case format.TypeBool:
			dst = append(dst, key...)
		case format.TypeInt32, format.TypeFloat32:
			dst = engine.AppendUint32(dst, binary.LittleEndian.Uint32(key))
		case format.TypeInt64, format.TypeFloat64:
			dst = engine.AppendUint64(dst, binary.LittleEndian.Uint64(key))
		case format.TypeTimestamp:
			micros := int64(binary.LittleEndian.Uint64(key))
			dst = engine.AppendUint64(dst, uint64(micros/tsDiv))
		case format.TypeString:
			dst = engine.AppendUint32(dst, uint32(len(key)))
			dst = append(dst, key...)
		}
	}

	return dst
}
