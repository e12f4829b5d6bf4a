package plan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/schema"
	"github.com/arloliu/strata/table"
)

func initTestPages(t *testing.T, tbl *table.Table, fragmentRows int, limits Limits, level format.StatisticsLevel) ([]RowGroupPlan, *PageTable) {
	t.Helper()

	descs := schema.FromTable(tbl, nil)
	frags := BuildFragments(tbl, fragmentRows)
	stats, err := GatherStatistics(tbl, frags)
	require.NoError(t, err)
	groups, err := BuildRowGroups(tbl, descs, frags, stats, limits)
	require.NoError(t, err)

	return groups, InitPages(groups, stats, level)
}

func TestInitPagesLayout(t *testing.T) {
	tbl := makeTable(t, 250)
	limits := wideLimits()
	limits.MaxRowGroupRows = 100

	groups, pt := initTestPages(t, tbl, 50, limits, format.StatisticsNone)
	require.Len(t, groups, 3)
	require.Len(t, pt.PagesPerGroup, 3)

	total := 0
	for _, n := range pt.PagesPerGroup {
		total += n
	}
	require.Len(t, pt.Pages, total)

	// Rowgroup-major, column-minor, chunk indices strictly non-decreasing.
	prevGroup, prevChunk := 0, 0
	for _, p := range pt.Pages {
		require.GreaterOrEqual(t, p.RowGroup, prevGroup)
		require.GreaterOrEqual(t, p.ChunkIdx, prevChunk)
		prevGroup, prevChunk = p.RowGroup, p.ChunkIdx
	}

	// No statistics requested: no buffers allocated.
	require.Nil(t, pt.ChunkStats)
	require.Nil(t, pt.PageStats)
	for _, p := range pt.Pages {
		require.Equal(t, -1, p.StatsIdx)
	}
}

func TestInitPagesDictionaryPageLeads(t *testing.T) {
	labels := make([]string, 6000)
	for i := range labels {
		labels[i] = fmt.Sprintf("s%d", i%3)
	}
	tbl, err := table.New(table.NewStringColumn("label", labels, nil))
	require.NoError(t, err)

	_, pt := initTestPages(t, tbl, DefaultFragmentRows, wideLimits(), format.StatisticsNone)

	require.Equal(t, format.PageDictionary, pt.Pages[0].Kind)
	require.Zero(t, pt.Pages[0].Span.NumRows)
	for _, p := range pt.Pages[1:] {
		require.Equal(t, format.PageData, p.Kind)
	}
}

func TestInitPagesChunkStats(t *testing.T) {
	tbl := makeTable(t, 250)
	_, pt := initTestPages(t, tbl, 100, wideLimits(), format.StatisticsChunk)

	require.Len(t, pt.ChunkStats, 2)
	require.Nil(t, pt.PageStats)
	require.Equal(t, int64(250), pt.ChunkStats[0].NumValues)
}

func TestInitPagesPageStats(t *testing.T) {
	tbl := makeTable(t, 1000)
	limits := wideLimits()
	limits.TargetPageBytes = 2048

	_, pt := initTestPages(t, tbl, 100, limits, format.StatisticsPage)
	require.NotNil(t, pt.ChunkStats)
	require.NotNil(t, pt.PageStats)

	// Every data page owns one stats rollup covering exactly its rows.
	for _, p := range pt.Pages {
		if p.Kind != format.PageData {
			require.Equal(t, -1, p.StatsIdx)
			continue
		}
		require.GreaterOrEqual(t, p.StatsIdx, 0)
		s := pt.PageStats[p.StatsIdx]
		require.Equal(t, int64(p.Span.NumRows), s.NumValues+s.NullCount)
		if p.Column == 0 {
			require.Equal(t, int64(p.Span.StartRow), s.Min.I)
			require.Equal(t, int64(p.Span.StartRow+p.Span.NumRows-1), s.Max.I)
		}
	}
}
