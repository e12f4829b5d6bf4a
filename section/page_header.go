package section

import (
	"github.com/arloliu/strata/endian"
	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
)

// PageHeader is the fixed-size header preceding every page payload.
//
// Layout (PageHeaderSize bytes):
//
//	0     kind
//	1     encoding
//	2     compression
//	3     flags (reserved, zero)
//	4-7   numValues   - row count for data pages, cardinality for dictionary pages
//	8-11  numNulls
//	12-15 uncompressedSize (payload only, header excluded)
//	16-19 compressedSize
type PageHeader struct {
	Kind             format.PageKind
	Encoding         format.EncodingType
	Compression      format.CompressionType
	Flags            uint8
	NumValues        uint32
	NumNulls         uint32
	UncompressedSize uint32
	CompressedSize   uint32
}

// AppendTo appends the serialized header using the given engine.
func (h *PageHeader) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = append(dst, byte(h.Kind), byte(h.Encoding), byte(h.Compression), h.Flags)
	dst = engine.AppendUint32(dst, h.NumValues)
	dst = engine.AppendUint32(dst, h.NumNulls)
	dst = engine.AppendUint32(dst, h.UncompressedSize)
	dst = engine.AppendUint32(dst, h.CompressedSize)

	return dst
}

// Parse fills the header from a byte slice of at least PageHeaderSize bytes.
func (h *PageHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < PageHeaderSize {
		return errs.ErrInvalidFooter
	}

	h.Kind = format.PageKind(data[0])
	h.Encoding = format.EncodingType(data[1])
	h.Compression = format.CompressionType(data[2])
	h.Flags = data[3]
	h.NumValues = engine.Uint32(data[4:8])
	h.NumNulls = engine.Uint32(data[8:12])
	h.UncompressedSize = engine.Uint32(data[12:16])
	h.CompressedSize = engine.Uint32(data[16:20])

	return nil
}
