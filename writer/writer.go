// Package writer implements the strata write session.
//
// A session wraps one sink and produces one strata file: a magic header,
// page data appended by one or more Write calls, and a trailing footer
// serialized at Close. Each Write runs the full planning pipeline
// (fragmentation, statistics, rowgroup and page sizing, page layout) before
// the batch encoder produces any output bytes, so sizing errors surface
// before the sink is touched.
package writer

import (
	"fmt"

	"github.com/arloliu/strata/compress"
	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/internal/options"
	"github.com/arloliu/strata/internal/plan"
	"github.com/arloliu/strata/schema"
	"github.com/arloliu/strata/section"
	"github.com/arloliu/strata/sink"
	"github.com/arloliu/strata/table"
)

// ChunksFilePathKey is the footer metadata key recording the path hint passed
// to Close, naming the file that holds the page data when the footer blob is
// stored separately.
const ChunksFilePathKey = "strata.chunks_file_path"

// Writer is a single-file write session. It is not safe for concurrent use;
// internal parallelism (statistics gathering, batch encoding) is managed by
// the pipeline itself.
type Writer struct {
	cfg   *Config
	snk   sink.Sink
	codec compress.Codec

	descs  []schema.Descriptor
	footer section.Footer

	headerWritten bool
	writes        int
	closed        bool
	// poisoned is set on the first sink failure. Page offsets recorded before
	// the failure no longer match the sink contents, so the session only
	// admits Close-as-error from then on.
	poisoned bool
}

// New creates a write session over the given sink.
func New(s sink.Sink, opts ...Option) (*Writer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "page")
	if err != nil {
		return nil, err
	}

	w := &Writer{cfg: cfg, snk: s, codec: codec}
	w.footer.Version = section.FormatVersion
	w.footer.KeyValue = cfg.keyValue

	return w, nil
}

// Write appends one table to the file as one or more rowgroups.
//
// The first call fixes the session schema from the table's columns (adjusted
// by any configured hints); every later call must present an identical
// flattened schema. A zero-row table is a no-op that still counts as the one
// permitted call in single-write mode.
func (w *Writer) Write(t *table.Table) error {
	if w.closed || w.poisoned {
		return errs.ErrWriterClosed
	}
	if t == nil || t.NumColumns() == 0 {
		return errs.ErrEmptyTable
	}
	if w.writes > 0 && w.cfg.singleWrite {
		return errs.ErrSingleWriteMode
	}

	descs := schema.FromTable(t, w.cfg.hints)
	if w.writes == 0 {
		w.descs = descs
		w.footer.Schema = schemaColumns(descs)
	} else if !schema.Equal(w.descs, descs) {
		return fmt.Errorf("%w: %d columns vs session's %d", errs.ErrSchemaMismatch, len(descs), len(w.descs))
	}

	if t.NumRows() == 0 {
		w.writes++
		return nil
	}

	frags := plan.BuildFragments(t, w.cfg.effectiveFragmentRows())
	stats, err := plan.GatherStatistics(t, frags)
	if err != nil {
		return err
	}
	groups, err := plan.BuildRowGroups(t, descs, frags, stats, w.cfg.limits())
	if err != nil {
		return err
	}
	pages := plan.InitPages(groups, stats, w.cfg.statsLevel)

	// Planning is complete; from here on bytes reach the sink.
	if err := w.ensureHeader(); err != nil {
		return err
	}
	for _, b := range makeBatches(pages.PagesPerGroup, w.cfg.pagesInBatch, w.cfg.rowGroupsInBatch) {
		if err := w.encodeBatch(t, groups, pages, b); err != nil {
			return err
		}
	}

	w.appendFooterGroups(groups, pages)
	w.writes++

	return nil
}

// Close serializes the footer, appends the trailer, and flushes the sink.
// A second Close is a no-op.
//
// When pathHint is given it is recorded in footer metadata under
// ChunksFilePathKey and the trailer bytes are also returned as a standalone
// metadata blob, decodable by section.ParseTrailer without the page data.
func (w *Writer) Close(pathHint ...string) ([]byte, error) {
	if w.closed {
		return nil, nil
	}
	if w.poisoned {
		w.closed = true
		return nil, fmt.Errorf("%w: earlier sink failure", errs.ErrWriterClosed)
	}

	hint := ""
	if len(pathHint) > 0 {
		hint = pathHint[0]
	}
	if hint != "" {
		w.footer.KeyValue = append(w.footer.KeyValue, section.KeyValue{Key: ChunksFilePathKey, Value: hint})
	}

	// A session closed without writes still produces a well-formed file:
	// magic, empty footer, trailer.
	if err := w.ensureHeader(); err != nil {
		return nil, err
	}

	trailer := w.footer.AppendTrailer(nil)
	if err := w.appendToSink(trailer); err != nil {
		return nil, err
	}
	if err := w.snk.Flush(); err != nil {
		w.poisoned = true
		return nil, fmt.Errorf("%w: %w", errs.ErrSinkFailure, err)
	}
	w.closed = true

	if hint != "" {
		return trailer, nil
	}

	return nil, nil
}

// NumRows returns the total row count appended so far.
func (w *Writer) NumRows() int64 {
	return w.footer.NumRows()
}

func (w *Writer) ensureHeader() error {
	if w.headerWritten {
		return nil
	}
	if err := w.appendToSink(section.Magic[:]); err != nil {
		return err
	}
	w.headerWritten = true

	return nil
}

func (w *Writer) appendToSink(p []byte) error {
	if _, err := w.snk.Write(p); err != nil {
		w.poisoned = true
		return fmt.Errorf("%w: %w", errs.ErrSinkFailure, err)
	}

	return nil
}

// appendFooterGroups aggregates the encoded page table into footer rowgroup
// and column chunk records.
func (w *Writer) appendFooterGroups(groups []plan.RowGroupPlan, pages *plan.PageTable) {
	numChunks := 0
	for gi := range groups {
		numChunks += len(groups[gi].Chunks)
	}

	aggs := make([]section.ColumnChunk, numChunks)
	seen := make([]bool, numChunks)
	for i := range pages.Pages {
		p := &pages.Pages[i]
		a := &aggs[p.ChunkIdx]
		if !seen[p.ChunkIdx] {
			// First page of the chunk carries the chunk offset; the
			// dictionary page is laid out first when present.
			a.Offset = p.Offset
			seen[p.ChunkIdx] = true
		}
		a.CompressedSize += section.PageHeaderSize + p.CompressedSize
		a.UncompressedSize += section.PageHeaderSize + p.UncompressedSize
		a.NumPages++
		if p.Kind == format.PageDictionary {
			a.DictPages++
		}
		if p.Oversized {
			a.OversizedPages++
		}
		if p.StatsIdx >= 0 {
			a.PageStats = append(a.PageStats, statsRecord(&pages.PageStats[p.StatsIdx]))
		}
	}

	chunkIdx := 0
	for gi := range groups {
		g := &groups[gi]
		rg := section.RowGroup{NumRows: int64(g.NumRows)}
		for ci := range g.Chunks {
			c := &g.Chunks[ci]
			cc := aggs[chunkIdx]
			cc.Column = uint32(c.Column)
			cc.NumValues = int64(g.NumRows)
			cc.NullCount = c.Stats.NullCount
			cc.Encoding = c.Encoding
			cc.Compression = w.cfg.compression
			if pages.ChunkStats != nil {
				s := statsRecord(&pages.ChunkStats[chunkIdx])
				cc.Stats = &s
			}
			rg.TotalBytes += cc.CompressedSize
			rg.Chunks = append(rg.Chunks, cc)
			chunkIdx++
		}
		w.footer.RowGroups = append(w.footer.RowGroups, rg)
	}
}

func statsRecord(s *plan.StatsChunk) section.Statistics {
	rec := section.Statistics{
		NullCount:     s.NullCount,
		DistinctCount: s.DistinctEstimate(),
	}
	if s.HasMinMax {
		rec.HasMinMax = true
		rec.Min = s.Min.Encode(nil)
		rec.Max = s.Max.Encode(nil)
	}

	return rec
}

func schemaColumns(descs []schema.Descriptor) []section.SchemaColumn {
	out := make([]section.SchemaColumn, len(descs))
	for i := range descs {
		out[i] = section.SchemaColumn{
			Name:     descs[i].Name,
			Type:     descs[i].Type,
			Depth:    descs[i].Depth,
			Nullable: descs[i].Nullable,
		}
	}

	return out
}
