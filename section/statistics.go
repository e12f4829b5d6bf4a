package section

import (
	"encoding/binary"

	"github.com/arloliu/strata/errs"
)

// Statistics is one serialized statistics record, scoped to a page or a
// column chunk. Min and Max hold the canonical little-endian value encoding
// of the column's physical type; both are empty when HasMinMax is false
// (all-null scope).
type Statistics struct {
	NullCount     int64
	DistinctCount int64
	HasMinMax     bool
	Min           []byte
	Max           []byte
}

// appendTo appends the serialized record. The footer is always
// little-endian, so no engine parameter.
func (s *Statistics) appendTo(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(s.NullCount))
	dst = binary.LittleEndian.AppendUint64(dst, uint64(s.DistinctCount))
	if !s.HasMinMax {
		return append(dst, 0)
	}

	dst = append(dst, 1)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s.Min)))
	dst = append(dst, s.Min...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s.Max)))
	dst = append(dst, s.Max...)

	return dst
}

// parseStatistics decodes one record starting at data[pos], returning the
// record and the position past it.
func parseStatistics(data []byte, pos int) (Statistics, int, error) {
	var s Statistics
	if pos+17 > len(data) {
		return s, 0, errs.ErrInvalidFooter
	}

	s.NullCount = int64(binary.LittleEndian.Uint64(data[pos:]))
	s.DistinctCount = int64(binary.LittleEndian.Uint64(data[pos+8:]))
	hasMinMax := data[pos+16]
	pos += 17
	if hasMinMax == 0 {
		return s, pos, nil
	}
	s.HasMinMax = true

	var err error
	if s.Min, pos, err = parseBytes(data, pos); err != nil {
		return s, 0, err
	}
	if s.Max, pos, err = parseBytes(data, pos); err != nil {
		return s, 0, err
	}

	return s, pos, nil
}

func parseBytes(data []byte, pos int) ([]byte, int, error) {
	if pos+4 > len(data) {
		return nil, 0, errs.ErrInvalidFooter
	}
	n := int(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4
	if pos+n > len(data) {
		return nil, 0, errs.ErrInvalidFooter
	}

	return data[pos : pos+n], pos + n, nil
}
