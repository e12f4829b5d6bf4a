package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/table"
)

func TestGatherFragmentStats(t *testing.T) {
	t.Run("int64", func(t *testing.T) {
		vals := []int64{5, -3, 12, -3, 7}
		tbl, err := table.New(table.NewInt64Column("v", vals, nil))
		require.NoError(t, err)

		s := GatherFragmentStats(tbl.Column(0), Fragment{NumRows: 5})
		require.Equal(t, int64(5), s.NumValues)
		require.Zero(t, s.NullCount)
		require.True(t, s.HasMinMax)
		require.Equal(t, int64(-3), s.Min.I)
		require.Equal(t, int64(12), s.Max.I)
		require.Equal(t, int64(4), s.DistinctEstimate())
	})

	t.Run("nulls excluded", func(t *testing.T) {
		vals := []int64{100, 1, 2, 200}
		valid := []bool{false, true, true, false}
		tbl, err := table.New(table.NewInt64Column("v", vals, valid))
		require.NoError(t, err)

		s := GatherFragmentStats(tbl.Column(0), Fragment{NumRows: 4})
		require.Equal(t, int64(2), s.NumValues)
		require.Equal(t, int64(2), s.NullCount)
		require.Equal(t, int64(1), s.Min.I)
		require.Equal(t, int64(2), s.Max.I)
	})

	t.Run("all null fragment", func(t *testing.T) {
		tbl, err := table.New(table.NewInt64Column("v", []int64{0, 0}, []bool{false, false}))
		require.NoError(t, err)

		s := GatherFragmentStats(tbl.Column(0), Fragment{NumRows: 2})
		require.Zero(t, s.NumValues)
		require.Equal(t, int64(2), s.NullCount)
		require.False(t, s.HasMinMax)
	})

	t.Run("NaN excluded from extremes but counted", func(t *testing.T) {
		vals := []float64{1.5, math.NaN(), 3.5}
		tbl, err := table.New(table.NewFloat64Column("v", vals, nil))
		require.NoError(t, err)

		s := GatherFragmentStats(tbl.Column(0), Fragment{NumRows: 3})
		require.Equal(t, int64(3), s.NumValues)
		require.True(t, s.HasMinMax)
		require.Equal(t, 1.5, s.Min.F)
		require.Equal(t, 3.5, s.Max.F)
	})

	t.Run("all NaN has no extremes", func(t *testing.T) {
		vals := []float64{math.NaN(), math.NaN()}
		tbl, err := table.New(table.NewFloat64Column("v", vals, nil))
		require.NoError(t, err)

		s := GatherFragmentStats(tbl.Column(0), Fragment{NumRows: 2})
		require.Equal(t, int64(2), s.NumValues)
		require.False(t, s.HasMinMax)
	})

	t.Run("strings order lexicographically", func(t *testing.T) {
		vals := []string{"pear", "apple", "zebra", "mango"}
		tbl, err := table.New(table.NewStringColumn("v", vals, nil))
		require.NoError(t, err)

		s := GatherFragmentStats(tbl.Column(0), Fragment{NumRows: 4})
		require.Equal(t, "apple", s.Min.S)
		require.Equal(t, "zebra", s.Max.S)
	})
}

func TestStatsChunkMerge(t *testing.T) {
	vals := make([]int64, 200)
	for i := range vals {
		vals[i] = int64(i % 37)
	}
	tbl, err := table.New(table.NewInt64Column("v", vals, nil))
	require.NoError(t, err)
	col := tbl.Column(0)

	// Rolling up halves must equal a direct scan of the whole range.
	whole := GatherFragmentStats(col, Fragment{StartRow: 0, NumRows: 200})

	left := GatherFragmentStats(col, Fragment{StartRow: 0, NumRows: 100})
	right := GatherFragmentStats(col, Fragment{StartRow: 100, NumRows: 100})
	merged := NewStatsChunk()
	merged.Merge(&left)
	merged.Merge(&right)

	require.Equal(t, whole.NumValues, merged.NumValues)
	require.Equal(t, whole.NullCount, merged.NullCount)
	require.Equal(t, whole.Min, merged.Min)
	require.Equal(t, whole.Max, merged.Max)
	require.Equal(t, whole.DistinctEstimate(), merged.DistinctEstimate())

	// Merge order must not matter either.
	reversed := NewStatsChunk()
	reversed.Merge(&right)
	reversed.Merge(&left)
	require.Equal(t, merged.DistinctEstimate(), reversed.DistinctEstimate())
	require.Equal(t, merged.Min, reversed.Min)
}

func TestStatsChunkMergeAllNullSide(t *testing.T) {
	tbl, err := table.New(table.NewInt64Column("v", []int64{0, 0, 7}, []bool{false, false, true}))
	require.NoError(t, err)
	col := tbl.Column(0)

	nulls := GatherFragmentStats(col, Fragment{StartRow: 0, NumRows: 2})
	vals := GatherFragmentStats(col, Fragment{StartRow: 2, NumRows: 1})

	merged := NewStatsChunk()
	merged.Merge(&nulls)
	merged.Merge(&vals)
	require.True(t, merged.HasMinMax)
	require.Equal(t, int64(7), merged.Min.I)
	require.Equal(t, int64(2), merged.NullCount)
}

func TestGatherStatistics(t *testing.T) {
	numRows := 12_000
	ids := make([]int64, numRows)
	labels := make([]string, numRows)
	for i := 0; i < numRows; i++ {
		ids[i] = int64(i)
		labels[i] = "x"
	}
	tbl, err := table.New(
		table.NewInt64Column("id", ids, nil),
		table.NewStringColumn("label", labels, nil),
	)
	require.NoError(t, err)

	frags := BuildFragments(tbl, DefaultFragmentRows)
	grid, err := GatherStatistics(tbl, frags)
	require.NoError(t, err)

	require.Len(t, grid, 2)
	require.Len(t, grid[0], 3)
	require.Equal(t, int64(0), grid[0][0].Min.I)
	require.Equal(t, int64(4999), grid[0][0].Max.I)
	require.Equal(t, int64(10000), grid[0][2].Min.I)
	require.Equal(t, format.TypeString, grid[1][0].Min.Kind)
	require.Equal(t, int64(1), grid[1][1].DistinctEstimate())
}
