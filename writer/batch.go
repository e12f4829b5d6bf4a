package writer

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/internal/encode"
	"github.com/arloliu/strata/internal/plan"
	"github.com/arloliu/strata/internal/pool"
	"github.com/arloliu/strata/section"
	"github.com/arloliu/strata/table"
)

// batchSpan selects a run of consecutive rowgroups and their pages for one
// encode pass.
type batchSpan struct {
	groupFirst int
	groupCount int
	pageFirst  int
	pageCount  int
}

// makeBatches partitions the write's rowgroups into encode batches honoring
// both batch ceilings: page count and rowgroup count. A rowgroup is never
// split across batches, and a batch always holds at least one rowgroup even
// when that rowgroup alone exceeds the page ceiling.
func makeBatches(pagesPerGroup []int, maxPages, maxGroups int) []batchSpan {
	var batches []batchSpan
	var cur batchSpan
	pageIdx := 0
	for gi, n := range pagesPerGroup {
		if cur.groupCount > 0 && (cur.groupCount >= maxGroups || cur.pageCount+n > maxPages) {
			batches = append(batches, cur)
			cur = batchSpan{}
		}
		if cur.groupCount == 0 {
			cur.groupFirst = gi
			cur.pageFirst = pageIdx
		}
		cur.groupCount++
		cur.pageCount += n
		pageIdx += n
	}
	if cur.groupCount > 0 {
		batches = append(batches, cur)
	}

	return batches
}

// chunkRun is the contiguous run of a single chunk's pages within a batch,
// encoded into one pooled staging buffer.
type chunkRun struct {
	chunk   *plan.ChunkPlan
	pages   []plan.EncPage
	staging *pool.ByteBuffer
}

// encodeBatch encodes and drains one batch of pages.
//
// Chunk runs encode in parallel into pooled staging buffers; page offsets are
// staging-relative during encode and rebased to absolute sink offsets in the
// strictly ordered drain that follows. Drain order equals page-table order,
// so the file layout is deterministic regardless of encode scheduling.
func (w *Writer) encodeBatch(t *table.Table, groups []plan.RowGroupPlan, pages *plan.PageTable, b batchSpan) error {
	batch := pages.Pages[b.pageFirst : b.pageFirst+b.pageCount]

	var runs []chunkRun
	for start := 0; start < len(batch); {
		end := start + 1
		for end < len(batch) && batch[end].ChunkIdx == batch[start].ChunkIdx {
			end++
		}
		p := &batch[start]
		runs = append(runs, chunkRun{
			chunk: &groups[p.RowGroup].Chunks[p.Column],
			pages: batch[start:end],
		})
		start = end
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range runs {
		run := &runs[i]
		run.staging = pool.GetStagingBuffer()
		g.Go(func() error {
			return w.encodeChunkRun(t, run)
		})
	}
	if err := g.Wait(); err != nil {
		for i := range runs {
			pool.PutStagingBuffer(runs[i].staging)
		}

		return err
	}

	for i := range runs {
		run := &runs[i]
		base := w.snk.BytesWritten()
		for j := range run.pages {
			run.pages[j].Offset += base
		}
		err := w.appendToSink(run.staging.Bytes())
		pool.PutStagingBuffer(run.staging)
		run.staging = nil
		if err != nil {
			return err
		}
	}

	return nil
}

// encodeChunkRun encodes all pages of one chunk run into its staging buffer.
// Runs from one batch execute concurrently but touch disjoint page table
// entries and own their staging buffers, so no synchronization is needed.
func (w *Writer) encodeChunkRun(t *table.Table, run *chunkRun) error {
	col := t.Column(run.chunk.Column)
	tsDiv := w.cfg.tsDiv()
	engine := w.cfg.engine

	plainEnc := encode.NewPlainEncoder(engine)
	var idxEnc *encode.IndexEncoder
	if run.chunk.Encoding == format.EncodingDictionary {
		idxEnc = encode.NewIndexEncoder(engine, encode.IndexWidth(run.chunk.Dict.Len()))
	}

	var payload, header, key []byte
	for i := range run.pages {
		p := &run.pages[i]
		payload = payload[:0]

		var numValues, numNulls uint32
		pageEncoding := run.chunk.Encoding

		switch p.Kind {
		case format.PageDictionary:
			// Dictionary values are themselves plain-encoded.
			pageEncoding = format.EncodingPlain
			payload = encode.AppendDictValues(payload, run.chunk.Dict.Values(), col.Type(), engine, tsDiv)
			numValues = uint32(run.chunk.Dict.Len())
		case format.PageData:
			var nulls int
			payload, nulls = encode.AppendValidity(payload, col, p.Span.StartRow, p.Span.NumRows)
			numValues = uint32(p.Span.NumRows)
			numNulls = uint32(nulls)

			if idxEnc != nil {
				idxEnc.Reset()
				end := p.Span.StartRow + p.Span.NumRows
				for row := p.Span.StartRow; row < end; row++ {
					if col.IsNull(row) {
						continue
					}
					key = plan.AppendValueKey(key[:0], col, row)
					// Every non-null value was added during the exact
					// dictionary build, so the lookup cannot miss.
					idx, _ := run.chunk.Dict.Index(key)
					idxEnc.Write(idx)
				}
				payload = append(payload, idxEnc.Bytes()...)
			} else {
				plainEnc.Reset()
				plainEnc.WriteColumn(col, p.Span.StartRow, p.Span.NumRows, tsDiv)
				payload = append(payload, plainEnc.Bytes()...)
			}
		}

		compressed, err := w.codec.Compress(payload)
		if err != nil {
			return err
		}

		h := section.PageHeader{
			Kind:             p.Kind,
			Encoding:         pageEncoding,
			Compression:      w.cfg.compression,
			NumValues:        numValues,
			NumNulls:         numNulls,
			UncompressedSize: uint32(len(payload)),
			CompressedSize:   uint32(len(compressed)),
		}

		p.UncompressedSize = int64(len(payload))
		p.CompressedSize = int64(len(compressed))
		p.Oversized = int64(len(compressed)) > w.cfg.targetPageBytes
		// Staging-relative; rebased when the batch drains.
		p.Offset = int64(run.staging.Len())

		header = h.AppendTo(header[:0], engine)
		run.staging.MustWrite(header)
		run.staging.MustWrite(compressed)
	}

	return nil
}
