package encode

import "github.com/arloliu/strata/table"

// AppendValidity appends the validity bitmap for rows [start, start+numRows)
// and returns the extended buffer with the null count.
//
// The bitmap is (numRows+7)/8 bytes, LSB-first within each byte, with a set
// bit marking a non-null row. It is always present at the head of a data
// page payload so page decoding never depends on schema nullability.
func AppendValidity(dst []byte, col *table.Column, start, numRows int) ([]byte, int) {
	bitmapLen := (numRows + 7) / 8
	base := len(dst)
	for i := 0; i < bitmapLen; i++ {
		dst = append(dst, 0)
	}

	nulls := 0
	if !col.HasNulls() {
		// All valid: set every bit, clear the trailing slack.
		for i := 0; i < numRows; i++ {
			dst[base+i/8] |= 1 << (i % 8)
		}

		return dst, 0
	}

	for i := 0; i < numRows; i++ {
		if col.IsNull(start + i) {
			nulls++
			continue
		}
		dst[base+i/8] |= 1 << (i % 8)
	}

	return dst, nulls
}
