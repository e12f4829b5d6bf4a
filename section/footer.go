package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
)

// KeyValue is one entry of the footer's user metadata, kept as an ordered
// slice so footer serialization is deterministic.
type KeyValue struct {
	Key   string
	Value string
}

// SchemaColumn is the footer record for one leaf column.
type SchemaColumn struct {
	Name     string
	Type     format.PhysicalType
	Depth    uint8
	Nullable bool
}

// ColumnChunk is the footer record for all pages of one column within one
// rowgroup. Offset is the absolute sink offset of the chunk's first page
// header; offsets are only final once the footer is serialized at close.
type ColumnChunk struct {
	Column           uint32
	Offset           int64
	CompressedSize   int64
	UncompressedSize int64
	NumValues        int64
	NullCount        int64
	NumPages         uint32
	DictPages        uint32
	OversizedPages   uint32
	Encoding         format.EncodingType
	Compression      format.CompressionType

	// Stats is the chunk-level rollup, present when the session collects
	// chunk or page statistics.
	Stats *Statistics
	// PageStats holds per-data-page records, present only at page-level
	// statistics granularity.
	PageStats []Statistics
}

// RowGroup is the footer record for one horizontal partition of the file.
type RowGroup struct {
	NumRows    int64
	TotalBytes int64
	Chunks     []ColumnChunk
}

// Footer is the trailing structural and statistical metadata of a strata
// file. It grows monotonically across writes and is serialized exactly once
// at close.
type Footer struct {
	Version   uint16
	Schema    []SchemaColumn
	RowGroups []RowGroup
	KeyValue  []KeyValue
}

// NumRows returns the total row count across all rowgroups.
func (f *Footer) NumRows() int64 {
	var n int64
	for i := range f.RowGroups {
		n += f.RowGroups[i].NumRows
	}

	return n
}

// Bytes serializes the footer region, excluding the trailer. The footer is
// always little-endian.
func (f *Footer) Bytes() []byte {
	dst := binary.LittleEndian.AppendUint16(nil, f.Version)

	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.Schema)))
	for i := range f.Schema {
		col := &f.Schema[i]
		dst = appendString16(dst, col.Name)
		nullable := byte(0)
		if col.Nullable {
			nullable = 1
		}
		dst = append(dst, byte(col.Type), col.Depth, nullable)
	}

	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.RowGroups)))
	for i := range f.RowGroups {
		rg := &f.RowGroups[i]
		dst = binary.LittleEndian.AppendUint64(dst, uint64(rg.NumRows))
		dst = binary.LittleEndian.AppendUint64(dst, uint64(rg.TotalBytes))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(rg.Chunks)))
		for j := range rg.Chunks {
			dst = appendColumnChunk(dst, &rg.Chunks[j])
		}
	}

	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.KeyValue)))
	for i := range f.KeyValue {
		dst = appendString16(dst, f.KeyValue[i].Key)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.KeyValue[i].Value)))
		dst = append(dst, f.KeyValue[i].Value...)
	}

	return dst
}

// AppendTrailer appends the serialized footer plus the trailing length field
// and magic marker. The result of appending to an empty slice is the
// standalone metadata blob returned by Close with a path hint.
func (f *Footer) AppendTrailer(dst []byte) []byte {
	footer := f.Bytes()
	dst = append(dst, footer...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(footer)))
	dst = append(dst, Magic[:]...)

	return dst
}

func appendColumnChunk(dst []byte, c *ColumnChunk) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, c.Column)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(c.Offset))
	dst = binary.LittleEndian.AppendUint64(dst, uint64(c.CompressedSize))
	dst = binary.LittleEndian.AppendUint64(dst, uint64(c.UncompressedSize))
	dst = binary.LittleEndian.AppendUint64(dst, uint64(c.NumValues))
	dst = binary.LittleEndian.AppendUint64(dst, uint64(c.NullCount))
	dst = binary.LittleEndian.AppendUint32(dst, c.NumPages)
	dst = binary.LittleEndian.AppendUint32(dst, c.DictPages)
	dst = binary.LittleEndian.AppendUint32(dst, c.OversizedPages)
	dst = append(dst, byte(c.Encoding), byte(c.Compression))

	if c.Stats == nil {
		dst = append(dst, 0)
	} else {
		dst = append(dst, 1)
		dst = c.Stats.appendTo(dst)
	}

	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(c.PageStats)))
	for i := range c.PageStats {
		dst = c.PageStats[i].appendTo(dst)
	}

	return dst
}

func appendString16(dst []byte, s string) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(s)))
	return append(dst, s...)
}

// ParseFooter decodes a footer region produced by Bytes.
func ParseFooter(data []byte) (*Footer, error) {
	p := &footerParser{data: data}

	f := &Footer{Version: p.uint16()}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidFooter, f.Version)
	}

	numCols := int(p.uint32())
	for i := 0; i < numCols && p.err == nil; i++ {
		col := SchemaColumn{Name: p.string16()}
		col.Type = format.PhysicalType(p.byte())
		col.Depth = p.byte()
		col.Nullable = p.byte() != 0
		f.Schema = append(f.Schema, col)
	}

	numGroups := int(p.uint32())
	for i := 0; i < numGroups && p.err == nil; i++ {
		rg := RowGroup{
			NumRows:    int64(p.uint64()),
			TotalBytes: int64(p.uint64()),
		}
		numChunks := int(p.uint32())
		for j := 0; j < numChunks && p.err == nil; j++ {
			rg.Chunks = append(rg.Chunks, p.columnChunk())
		}
		f.RowGroups = append(f.RowGroups, rg)
	}

	numKV := int(p.uint32())
	for i := 0; i < numKV && p.err == nil; i++ {
		kv := KeyValue{Key: p.string16()}
		kv.Value = string(p.bytes32())
		f.KeyValue = append(f.KeyValue, kv)
	}

	if p.err != nil {
		return nil, p.err
	}

	return f, nil
}

// ParseTrailer locates and decodes the footer of a complete file or a
// standalone metadata blob via the trailing length field and magic marker.
func ParseTrailer(blob []byte) (*Footer, error) {
	if len(blob) < TrailerSize {
		return nil, fmt.Errorf("%w: %d bytes is smaller than the trailer", errs.ErrInvalidFooter, len(blob))
	}
	if string(blob[len(blob)-MagicSize:]) != string(Magic[:]) {
		return nil, errs.ErrInvalidMagic
	}

	footerLen := int(binary.LittleEndian.Uint32(blob[len(blob)-TrailerSize:]))
	end := len(blob) - TrailerSize
	if footerLen > end {
		return nil, fmt.Errorf("%w: footer length %d exceeds file", errs.ErrInvalidFooter, footerLen)
	}

	return ParseFooter(blob[end-footerLen : end])
}

// footerParser is a cursor over the footer region with sticky error state.
type footerParser struct {
	data []byte
	pos  int
	err  error
}

func (p *footerParser) fail() {
	if p.err == nil {
		p.err = errs.ErrInvalidFooter
	}
}

func (p *footerParser) byte() byte {
	if p.err != nil || p.pos+1 > len(p.data) {
		p.fail()
		return 0
	}
	b := p.data[p.pos]
	p.pos++

	return b
}

func (p *footerParser) uint16() uint16 {
	if p.err != nil || p.pos+2 > len(p.data) {
		p.fail()
		return 0
	}
	v := binary.LittleEndian.Uint16(p.data[p.pos:])
	p.pos += 2

	return v
}

func (p *footerParser) uint32() uint32 {
	if p.err != nil || p.pos+4 > len(p.data) {
		p.fail()
		return 0
	}
	v := binary.LittleEndian.Uint32(p.data[p.pos:])
	p.pos += 4

	return v
}

func (p *footerParser) uint64() uint64 {
	if p.err != nil || p.pos+8 > len(p.data) {
		p.fail()
		return 0
	}
	v := binary.LittleEndian.Uint64(p.data[p.pos:])
	p.pos += 8

	return v
}

func (p *footerParser) string16() string {
	n := int(p.uint16())
	if p.err != nil || p.pos+n > len(p.data) {
		p.fail()
		return ""
	}
	s := string(p.data[p.pos : p.pos+n])
	p.pos += n

	return s
}

func (p *footerParser) bytes32() []byte {
	n := int(p.uint32())
	if p.err != nil || p.pos+n > len(p.data) {
		p.fail()
		return nil
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n

	return b
}

func (p *footerParser) statistics() Statistics {
	if p.err != nil {
		return Statistics{}
	}
	s, pos, err := parseStatistics(p.data, p.pos)
	if err != nil {
		p.err = err
		return Statistics{}
	}
	p.pos = pos

	return s
}

func (p *footerParser) columnChunk() ColumnChunk {
	c := ColumnChunk{
		Column:           p.uint32(),
		Offset:           int64(p.uint64()),
		CompressedSize:   int64(p.uint64()),
		UncompressedSize: int64(p.uint64()),
		NumValues:        int64(p.uint64()),
		NullCount:        int64(p.uint64()),
		NumPages:         p.uint32(),
		DictPages:        p.uint32(),
		OversizedPages:   p.uint32(),
	}
	c.Encoding = format.EncodingType(p.byte())
	c.Compression = format.CompressionType(p.byte())

	if p.byte() != 0 {
		stats := p.statistics()
		c.Stats = &stats
	}

	numPageStats := int(p.uint32())
	for i := 0; i < numPageStats && p.err == nil; i++ {
		c.PageStats = append(c.PageStats, p.statistics())
	}

	return c
}
