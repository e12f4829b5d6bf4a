package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	a := Sum([]byte("cpu.usage"))
	b := Sum([]byte("cpu.usage"))
	c := Sum([]byte("cpu.usagf"))

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.NotZero(t, a)
}

func TestSumStringMatchesSum(t *testing.T) {
	require.Equal(t, Sum([]byte("memory.free")), SumString("memory.free"))
	require.Equal(t, Sum(nil), SumString(""))
}
