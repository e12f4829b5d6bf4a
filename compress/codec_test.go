package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/format"
)

// testPayload builds a compressible page-like payload: a validity run plus
// repeating fixed-width values.
func testPayload(n int) []byte {
	buf := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		buf = append(buf, byte(i), 0, 0, 0, byte(i%7), 0, 0, 0)
	}

	return buf
}

func TestCodecRoundTrip(t *testing.T) {
	payload := testPayload(4096)

	for _, typ := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CreateCodec(typ, "page")
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored))

			if typ != format.CompressionNone {
				require.Less(t, len(compressed), len(payload))
			}
		})
	}
}

func TestCodecEmptyPayload(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CreateCodec(typ, "page")
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCodecRepeatedUse(t *testing.T) {
	// Codecs reuse internal buffers; back-to-back payloads must not bleed
	// into each other.
	codec, err := CreateCodec(format.CompressionZstd, "page")
	require.NoError(t, err)

	a := testPayload(1000)
	b := testPayload(50)

	ca, err := codec.Compress(a)
	require.NoError(t, err)
	cb, err := codec.Compress(b)
	require.NoError(t, err)

	ra, err := codec.Decompress(ca)
	require.NoError(t, err)
	rb, err := codec.Decompress(cb)
	require.NoError(t, err)
	require.True(t, bytes.Equal(a, ra))
	require.True(t, bytes.Equal(b, rb))
}

func TestCreateCodecInvalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0xee), "page")
	require.Error(t, err)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(0xee))
	require.Error(t, err)
}
