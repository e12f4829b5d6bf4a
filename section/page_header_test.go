package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/endian"
	"github.com/arloliu/strata/format"
)

func TestPageHeaderRoundTrip(t *testing.T) {
	h := PageHeader{
		Kind:             format.PageData,
		Encoding:         format.EncodingDictionary,
		Compression:      format.CompressionLZ4,
		NumValues:        5000,
		NumNulls:         12,
		UncompressedSize: 40625,
		CompressedSize:   10240,
	}

	for _, engine := range []endian.EndianEngine{
		endian.GetLittleEndianEngine(),
		endian.GetBigEndianEngine(),
	} {
		data := h.AppendTo(nil, engine)
		require.Len(t, data, PageHeaderSize)

		var parsed PageHeader
		require.NoError(t, parsed.Parse(data, engine))
		require.Equal(t, h, parsed)
	}
}

func TestPageHeaderDictionaryPage(t *testing.T) {
	le := endian.GetLittleEndianEngine()
	h := PageHeader{
		Kind:             format.PageDictionary,
		Encoding:         format.EncodingPlain,
		Compression:      format.CompressionNone,
		NumValues:        64, // dictionary cardinality, not a row count
		UncompressedSize: 512,
		CompressedSize:   512,
	}

	data := h.AppendTo(nil, le)
	require.Equal(t, byte(format.PageDictionary), data[0])
	require.Equal(t, byte(format.EncodingPlain), data[1])

	var parsed PageHeader
	require.NoError(t, parsed.Parse(data, le))
	require.Equal(t, uint32(64), parsed.NumValues)
	require.Zero(t, parsed.NumNulls)
}

func TestPageHeaderParseTooShort(t *testing.T) {
	var h PageHeader
	err := h.Parse(make([]byte, PageHeaderSize-1), endian.GetLittleEndianEngine())
	require.Error(t, err)
}
