package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/table"
)

func TestScalarEncode(t *testing.T) {
	require.Equal(t, []byte{1}, Scalar{Kind: format.TypeBool, I: 1}.Encode(nil))
	require.Equal(t, []byte{0}, Scalar{Kind: format.TypeBool}.Encode(nil))
	require.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, Scalar{Kind: format.TypeInt32, I: -2}.Encode(nil))
	require.Equal(t, []byte("abc"), Scalar{Kind: format.TypeString, S: "abc"}.Encode(nil))
	require.Equal(t,
		[]byte{0x2a, 0, 0, 0, 0, 0, 0, 0},
		Scalar{Kind: format.TypeTimestamp, I: 42}.Encode(nil))
}

func TestScalarLess(t *testing.T) {
	require.True(t, Scalar{Kind: format.TypeInt64, I: -1}.Less(Scalar{Kind: format.TypeInt64, I: 0}))
	require.True(t, Scalar{Kind: format.TypeFloat64, F: 0.5}.Less(Scalar{Kind: format.TypeFloat64, F: 0.6}))
	require.True(t, Scalar{Kind: format.TypeString, S: "a"}.Less(Scalar{Kind: format.TypeString, S: "b"}))
	require.False(t, Scalar{Kind: format.TypeString, S: "b"}.Less(Scalar{Kind: format.TypeString, S: "b"}))
}

func TestAppendValueKey(t *testing.T) {
	tbl, err := table.New(
		table.NewInt32Column("i32", []int32{-2}, nil),
		table.NewStringColumn("s", []string{"key"}, nil),
		table.NewTimestampMicrosColumn("ts", []int64{42}, nil),
	)
	require.NoError(t, err)

	// Keys are always little-endian, matching the min/max encoding.
	require.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, AppendValueKey(nil, tbl.Column(0), 0))
	require.Equal(t, []byte("key"), AppendValueKey(nil, tbl.Column(1), 0))
	require.Equal(t, []byte{0x2a, 0, 0, 0, 0, 0, 0, 0}, AppendValueKey(nil, tbl.Column(2), 0))

	// The key matches the scalar encoding of the same value.
	v, ok := scalarAt(tbl.Column(0), 0)
	require.True(t, ok)
	require.Equal(t, v.Encode(nil), AppendValueKey(nil, tbl.Column(0), 0))
}
