package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine(t *testing.T) {
	e := GetLittleEndianEngine()

	buf := e.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), e.Uint32(buf))

	buf = e.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), e.Uint64(buf))
}

func TestBigEndianEngine(t *testing.T) {
	e := GetBigEndianEngine()

	buf := e.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
	require.Equal(t, uint32(0x01020304), e.Uint32(buf))

	buf = e.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, buf)
}
