// Package section defines the binary wire records of the strata file layout:
// the file magic, page headers, and the trailing footer with its rowgroup,
// column-chunk and statistics records.
//
// Record layout mirrors the file: encoded column-chunk byte ranges
// (rowgroup-major, column-minor, page-major within a chunk) followed by a
// serialized footer located through a fixed trailing length field plus magic
// marker. Page payloads honor the session byte order; the footer itself is
// always little-endian so it can be parsed before any session state exists.
package section

// Magic is the 4-byte marker written at the start of the file and again at
// the very end, after the footer length field.
var Magic = [4]byte{'S', 'T', 'A', '1'}

const (
	// FormatVersion is the footer layout version.
	FormatVersion uint16 = 1

	// MagicSize is the byte size of the magic marker.
	MagicSize = 4

	// FooterLenSize is the byte size of the trailing footer length field.
	FooterLenSize = 4

	// TrailerSize is the fixed tail of the file: footer length plus magic.
	TrailerSize = FooterLenSize + MagicSize

	// PageHeaderSize is the fixed byte size of a page header.
	PageHeaderSize = 20
)
