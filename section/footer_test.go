package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
)

func testFooter() *Footer {
	return &Footer{
		Version: FormatVersion,
		Schema: []SchemaColumn{
			{Name: "id", Type: format.TypeInt64, Depth: 0, Nullable: false},
			{Name: "user.name", Type: format.TypeString, Depth: 1, Nullable: true},
		},
		RowGroups: []RowGroup{
			{
				NumRows:    1000,
				TotalBytes: 4096,
				Chunks: []ColumnChunk{
					{
						Column:           0,
						Offset:           4,
						CompressedSize:   2048,
						UncompressedSize: 8020,
						NumValues:        1000,
						NumPages:         2,
						Encoding:         format.EncodingPlain,
						Compression:      format.CompressionZstd,
					},
					{
						Column:           1,
						Offset:           2052,
						CompressedSize:   2048,
						UncompressedSize: 9000,
						NumValues:        1000,
						NullCount:        17,
						NumPages:         3,
						DictPages:        1,
						OversizedPages:   1,
						Encoding:         format.EncodingDictionary,
						Compression:      format.CompressionZstd,
						Stats: &Statistics{
							NullCount:     17,
							DistinctCount: 42,
							HasMinMax:     true,
							Min:           []byte("aaa"),
							Max:           []byte("zzz"),
						},
						PageStats: []Statistics{
							{NullCount: 17, DistinctCount: 30, HasMinMax: true, Min: []byte("aaa"), Max: []byte("mmm")},
							{DistinctCount: 20, HasMinMax: true, Min: []byte("n"), Max: []byte("zzz")},
						},
					},
				},
			},
		},
		KeyValue: []KeyValue{
			{Key: "created_by", Value: "strata"},
			{Key: "empty", Value: ""},
		},
	}
}

func TestFooterRoundTrip(t *testing.T) {
	f := testFooter()

	parsed, err := ParseFooter(f.Bytes())
	require.NoError(t, err)
	require.Equal(t, f, parsed)
	require.Equal(t, int64(1000), parsed.NumRows())
}

func TestFooterRoundTripMinimal(t *testing.T) {
	f := &Footer{Version: FormatVersion}

	parsed, err := ParseFooter(f.Bytes())
	require.NoError(t, err)
	require.Equal(t, f, parsed)
	require.Zero(t, parsed.NumRows())
}

func TestFooterAllNullStats(t *testing.T) {
	f := &Footer{
		Version: FormatVersion,
		Schema:  []SchemaColumn{{Name: "v", Type: format.TypeInt64, Nullable: true}},
		RowGroups: []RowGroup{{
			NumRows: 5,
			Chunks: []ColumnChunk{{
				NumValues: 5,
				NullCount: 5,
				NumPages:  1,
				Encoding:  format.EncodingPlain,
				Stats:     &Statistics{NullCount: 5},
			}},
		}},
	}

	parsed, err := ParseFooter(f.Bytes())
	require.NoError(t, err)
	stats := parsed.RowGroups[0].Chunks[0].Stats
	require.NotNil(t, stats)
	require.False(t, stats.HasMinMax)
	require.Empty(t, stats.Min)
	require.Empty(t, stats.Max)
}

func TestAppendTrailer(t *testing.T) {
	f := testFooter()

	blob := f.AppendTrailer(nil)
	footer := f.Bytes()
	require.Len(t, blob, len(footer)+TrailerSize)
	require.Equal(t, Magic[:], blob[len(blob)-MagicSize:])

	parsed, err := ParseTrailer(blob)
	require.NoError(t, err)
	require.Equal(t, f, parsed)
}

func TestParseTrailerWithLeadingData(t *testing.T) {
	// Trailer parsing must work on a whole file: page bytes ahead of the
	// footer are ignored.
	f := testFooter()
	file := append([]byte("PAGEDATAPAGEDATA"), f.AppendTrailer(nil)...)

	parsed, err := ParseTrailer(file)
	require.NoError(t, err)
	require.Equal(t, f, parsed)
}

func TestParseTrailerErrors(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := ParseTrailer([]byte("abc"))
		require.ErrorIs(t, err, errs.ErrInvalidFooter)
	})

	t.Run("bad magic", func(t *testing.T) {
		blob := testFooter().AppendTrailer(nil)
		blob[len(blob)-1] = 'X'
		_, err := ParseTrailer(blob)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("length exceeds blob", func(t *testing.T) {
		blob := append([]byte{0xff, 0xff, 0xff, 0x7f}, Magic[:]...)
		_, err := ParseTrailer(blob)
		require.ErrorIs(t, err, errs.ErrInvalidFooter)
	})

	t.Run("truncated footer", func(t *testing.T) {
		full := testFooter().AppendTrailer(nil)
		// Keep the trailer but drop footer bytes ahead of it.
		cut := append([]byte{}, full[len(full)/2:]...)
		_, err := ParseTrailer(cut)
		require.Error(t, err)
	})
}

func TestParseFooterUnsupportedVersion(t *testing.T) {
	f := testFooter()
	data := f.Bytes()
	data[0] = 99

	_, err := ParseFooter(data)
	require.ErrorIs(t, err, errs.ErrInvalidFooter)
}
