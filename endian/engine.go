// Package endian provides byte order utilities for the strata binary format.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so page payloads and
// footer sections can both read fixed offsets and append values without an
// intermediate scratch buffer.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for binary section encoding.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so the engine
// is immutable, stateless and safe for concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
// It is the default for all strata payloads and the only byte order used by
// the footer.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. It only needs to be used
// when page payloads must interoperate with big-endian consumers.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
