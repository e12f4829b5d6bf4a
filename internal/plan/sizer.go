package plan

import (
	"fmt"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/internal/dict"
	"github.com/arloliu/strata/schema"
	"github.com/arloliu/strata/table"
)

// DictionaryRatio is the distinct-to-total threshold below which an eligible
// column chunk is dictionary-encoded. Above it, repeated values are too rare
// for index encoding to pay for the dictionary page.
const DictionaryRatio = 0.5

// Limits carries the sizing ceilings consulted while partitioning rows into
// rowgroups and pages. It is derived from the session configuration and
// immutable during a write.
type Limits struct {
	MaxRowGroupBytes int64
	MaxRowGroupRows  int64
	TargetPageBytes  int64
	// StagingBytes is the batch memory budget. A single page whose minimum
	// footprint exceeds it cannot be encoded and fails the write.
	StagingBytes int64
}

// PageSpan is one provisional data page: a run of whole fragments within a
// column chunk. True byte sizes are known only after encode and compression.
type PageSpan struct {
	StartRow  int
	NumRows   int
	RawBytes  int64
	FragFirst int
	FragCount int
}

// ChunkPlan is the encoding decision for one (rowgroup, column) pair:
// dictionary or plain, the provisional page list, and the rolled-up chunk
// statistics. Created here, consumed by the page initializer and the batch
// encoder.
type ChunkPlan struct {
	Column   int
	StartRow int
	NumRows  int
	RawBytes int64

	Encoding format.EncodingType
	// Dict is the fully built dictionary when Encoding is
	// EncodingDictionary, nil otherwise.
	Dict *dict.Builder

	Pages []PageSpan
	Stats StatsChunk
}

// RowGroupPlan is one horizontal partition of the rows in a single write
// call, holding one ChunkPlan per column.
type RowGroupPlan struct {
	StartRow  int
	NumRows   int
	RawBytes  int64
	FragFirst int
	FragCount int
	Chunks    []ChunkPlan
}

// BuildRowGroups partitions the fragment grid into rowgroups and decides the
// encoding of every column chunk.
//
// A rowgroup boundary is forced as soon as appending the next fragment would
// exceed either the row-count or the byte-size ceiling; rows are never split
// below fragment granularity, and a rowgroup always contains at least one
// fragment. This stage is also the memory-budget gate: it fails with
// ErrPageTooLarge before any encode work is issued when a single page's
// minimum footprint cannot fit the staging budget.
func BuildRowGroups(
	t *table.Table,
	descs []schema.Descriptor,
	frags [][]Fragment,
	stats [][]StatsChunk,
	limits Limits,
) ([]RowGroupPlan, error) {
	numFrags := 0
	if len(frags) > 0 {
		numFrags = len(frags[0])
	}

	// Partition fragments into rowgroups. Fragment boundaries are shared by
	// all columns, so the walk is over fragment indices.
	var groups []RowGroupPlan
	cur := RowGroupPlan{}
	for fi := 0; fi < numFrags; fi++ {
		fragRows := int64(frags[0][fi].NumRows)
		var fragBytes int64
		for ci := range frags {
			fragBytes += frags[ci][fi].RawBytes
		}

		if cur.FragCount > 0 &&
			(int64(cur.NumRows)+fragRows > limits.MaxRowGroupRows ||
				cur.RawBytes+fragBytes > limits.MaxRowGroupBytes) {
			groups = append(groups, cur)
			cur = RowGroupPlan{StartRow: frags[0][fi].StartRow, FragFirst: fi}
		}
		if cur.FragCount == 0 {
			cur.StartRow = frags[0][fi].StartRow
			cur.FragFirst = fi
		}
		cur.NumRows += int(fragRows)
		cur.RawBytes += fragBytes
		cur.FragCount++
	}
	if cur.FragCount > 0 {
		groups = append(groups, cur)
	}

	// Decide per-chunk encodings and lay provisional pages.
	for gi := range groups {
		g := &groups[gi]
		g.Chunks = make([]ChunkPlan, len(frags))
		for ci := range frags {
			chunk, err := buildChunkPlan(t, &descs[ci], frags[ci], stats[ci], g, ci, limits)
			if err != nil {
				return nil, err
			}
			g.Chunks[ci] = chunk
		}
	}

	return groups, nil
}

func buildChunkPlan(
	t *table.Table,
	desc *schema.Descriptor,
	frags []Fragment,
	stats []StatsChunk,
	g *RowGroupPlan,
	col int,
	limits Limits,
) (ChunkPlan, error) {
	chunk := ChunkPlan{
		Column:   col,
		StartRow: g.StartRow,
		NumRows:  g.NumRows,
		Encoding: format.EncodingPlain,
		Stats:    NewStatsChunk(),
	}

	for fi := g.FragFirst; fi < g.FragFirst+g.FragCount; fi++ {
		chunk.RawBytes += frags[fi].RawBytes
		chunk.Stats.Merge(&stats[fi])
	}

	// Dictionary decision: estimated distinct ratio below threshold, then an
	// exact dictionary build that must fit the target page size and stay
	// collision-free.
	if desc.DictEligible && chunk.Stats.NumValues > 0 {
		distinct := chunk.Stats.DistinctEstimate()
		if float64(distinct) < DictionaryRatio*float64(chunk.Stats.NumValues) {
			if b := buildDictionary(t.Column(col), g.StartRow, g.NumRows, limits.TargetPageBytes); b != nil {
				chunk.Encoding = format.EncodingDictionary
				chunk.Dict = b
			}
		}
	}

	// Provisional data pages: whole fragments accumulated up to the target
	// page size, at least one fragment per page.
	var page PageSpan
	for fi := g.FragFirst; fi < g.FragFirst+g.FragCount; fi++ {
		f := &frags[fi]
		if f.RawBytes > limits.StagingBytes {
			return ChunkPlan{}, fmt.Errorf("%w: column %d rows [%d,%d) needs %d bytes, budget %d",
				errs.ErrPageTooLarge, col, f.StartRow, f.StartRow+f.NumRows, f.RawBytes, limits.StagingBytes)
		}

		if page.FragCount > 0 && page.RawBytes+f.RawBytes > limits.TargetPageBytes {
			chunk.Pages = append(chunk.Pages, page)
			page = PageSpan{}
		}
		if page.FragCount == 0 {
			page.StartRow = f.StartRow
			page.FragFirst = fi
		}
		page.NumRows += f.NumRows
		page.RawBytes += f.RawBytes
		page.FragCount++
	}
	if page.FragCount > 0 {
		chunk.Pages = append(chunk.Pages, page)
	}

	return chunk, nil
}

// buildDictionary attempts an exact dictionary over the chunk's rows.
// Returns nil when the dictionary outgrows maxBytes or a hash collision is
// detected; the chunk then falls back to plain encoding for all its pages.
func buildDictionary(col *table.Column, startRow, numRows int, maxBytes int64) *dict.Builder {
	b := dict.NewBuilder()

	var key []byte
	for row := startRow; row < startRow+numRows; row++ {
		if col.IsNull(row) {
			continue
		}
		key = AppendValueKey(key[:0], col, row)

		if _, ok := b.Add(key, col.ValueBytes(row)); !ok {
			return nil
		}
		if b.ByteSize() > maxBytes {
			return nil
		}
	}

	return b
}
