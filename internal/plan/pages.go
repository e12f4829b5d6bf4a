package plan

import "github.com/arloliu/strata/format"

// EncPage is one concrete encoder page, laid out by InitPages and mutated in
// place by the batch encoder (sizes after encode, offset after drain). Pages
// are never resized after encode.
type EncPage struct {
	RowGroup int
	Column   int
	// ChunkIdx is the flat chunk index, rowgroup-major column-minor.
	ChunkIdx int
	Kind     format.PageKind
	// Span is the row range covered; zero rows for dictionary pages.
	Span PageSpan
	// StatsIdx indexes PageTable.PageStats, -1 when page statistics are not
	// collected or the page is a dictionary page.
	StatsIdx int

	// Filled by the batch encoder.
	UncompressedSize int64
	CompressedSize   int64
	// Offset is the absolute sink offset of the page header, assigned when
	// the page's batch is drained.
	Offset int64
	// Oversized records that the compressed page overflowed the target page
	// size. The page is still emitted; page size is advisory.
	Oversized bool
}

// PageTable is the flattened page array for one write call, with the
// optional statistics buffers for the requested granularity. Statistics
// buffers are allocated exactly once per granularity so no aggregation pass
// repeats.
type PageTable struct {
	Pages []EncPage
	// PagesPerGroup counts pages (dictionary pages included) per rowgroup,
	// used by the batch iterator.
	PagesPerGroup []int
	// PageStats holds per-data-page rollups when the statistics level is
	// StatisticsPage; nil otherwise.
	PageStats []StatsChunk
	// ChunkStats holds per-chunk rollups when the statistics level is
	// StatisticsChunk or StatisticsPage; nil otherwise.
	ChunkStats []StatsChunk
}

// InitPages flattens the sizing decisions into the concrete page table,
// rowgroup-major, column-minor, dictionary page ahead of data pages within a
// chunk.
func InitPages(groups []RowGroupPlan, stats [][]StatsChunk, level format.StatisticsLevel) *PageTable {
	pt := &PageTable{PagesPerGroup: make([]int, len(groups))}

	wantChunk := level == format.StatisticsChunk || level == format.StatisticsPage
	wantPage := level == format.StatisticsPage

	chunkIdx := 0
	for gi := range groups {
		g := &groups[gi]
		count := 0
		for ci := range g.Chunks {
			c := &g.Chunks[ci]

			if c.Encoding == format.EncodingDictionary {
				pt.Pages = append(pt.Pages, EncPage{
					RowGroup: gi,
					Column:   c.Column,
					ChunkIdx: chunkIdx,
					Kind:     format.PageDictionary,
					StatsIdx: -1,
				})
				count++
			}

			for pi := range c.Pages {
				statsIdx := -1
				if wantPage {
					rollup := NewStatsChunk()
					span := &c.Pages[pi]
					for fi := span.FragFirst; fi < span.FragFirst+span.FragCount; fi++ {
						rollup.Merge(&stats[c.Column][fi])
					}
					statsIdx = len(pt.PageStats)
					pt.PageStats = append(pt.PageStats, rollup)
				}

				pt.Pages = append(pt.Pages, EncPage{
					RowGroup: gi,
					Column:   c.Column,
					ChunkIdx: chunkIdx,
					Kind:     format.PageData,
					Span:     c.Pages[pi],
					StatsIdx: statsIdx,
				})
				count++
			}

			if wantChunk {
				pt.ChunkStats = append(pt.ChunkStats, c.Stats)
			}
			chunkIdx++
		}
		pt.PagesPerGroup[gi] = count
	}

	return pt
}
