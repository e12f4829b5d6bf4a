// Package strata writes in-memory columnar tables to a compact binary
// columnar file: rows partitioned into rowgroups, one compressed column
// chunk per (rowgroup, column), chunks divided into pages, and a trailing
// footer holding schema, layout and optional statistics.
//
// # File Layout
//
//   - 4-byte magic marker
//   - Page data, rowgroup-major, column-minor; an optional dictionary page
//     leads each dictionary-encoded chunk
//   - Footer (schema, rowgroups, column chunks, statistics, user metadata)
//   - 4-byte footer length, then the magic marker again
//
// # Core Features
//
//   - Deterministic planning: all sizing, statistics and encoding decisions
//     are made before any output byte is produced
//   - Automatic dictionary encoding for low-cardinality column chunks, with
//     exact-build fallback to plain encoding
//   - Optional compression per session (None, Zstd, S2, LZ4)
//   - Chunk- or page-level min/max/distinct statistics
//   - Bounded memory: pages are encoded and drained in fixed-size batches
//
// # Basic Usage
//
// Writing a table to a file:
//
//	import "github.com/arloliu/strata"
//
//	w, _ := strata.NewFileWriter("metrics.strata",
//	    strata.WithCompression(strata.CompressionZstd),
//	    strata.WithStatistics(strata.StatisticsChunk),
//	)
//
//	ids := strata.NewInt64Column("id", []int64{1, 2, 3}, nil)
//	vals := strata.NewFloat64Column("value", []float64{0.5, 1.5, 2.5}, nil)
//	tbl, _ := strata.NewTable(ids, vals)
//
//	_ = w.Write(tbl)
//	_, _ = w.Close()
//
// Multiple Write calls append further rowgroups to the same file; every
// table after the first must carry an identical schema.
//
// Reading back the footer of a written file:
//
//	footer, _ := strata.ParseTrailer(fileBytes)
//	fmt.Println(footer.NumRows())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the writer,
// table and section packages, simplifying the most common use cases. For
// fine-grained control (custom sinks, column hints, batch limits), use
// those packages directly.
package strata

import (
	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/section"
	"github.com/arloliu/strata/sink"
	"github.com/arloliu/strata/table"
	"github.com/arloliu/strata/writer"
)

// Re-exported input model constructors.
var (
	NewBoolColumn            = table.NewBoolColumn
	NewInt32Column           = table.NewInt32Column
	NewInt64Column           = table.NewInt64Column
	NewFloat32Column         = table.NewFloat32Column
	NewFloat64Column         = table.NewFloat64Column
	NewStringColumn          = table.NewStringColumn
	NewTimestampColumn       = table.NewTimestampColumn
	NewTimestampMicrosColumn = table.NewTimestampMicrosColumn
	NewTable                 = table.New
)

// Table is the in-memory columnar input consumed by a writer session.
type Table = table.Table

// Column is a single typed leaf column of a table.
type Column = table.Column

// Writer is a single-file write session.
type Writer = writer.Writer

// Option configures a writer session.
type Option = writer.Option

// Re-exported session options.
var (
	WithMaxRowGroupBytes = writer.WithMaxRowGroupBytes
	WithMaxRowGroupRows  = writer.WithMaxRowGroupRows
	WithTargetPageSize   = writer.WithTargetPageSize
	WithCompression      = writer.WithCompression
	WithStatistics       = writer.WithStatistics
	WithSingleWriteMode  = writer.WithSingleWriteMode
	WithKeyValueMetadata = writer.WithKeyValueMetadata
)

// Compression kinds accepted by WithCompression.
const (
	CompressionNone = format.CompressionNone
	CompressionZstd = format.CompressionZstd
	CompressionS2   = format.CompressionS2
	CompressionLZ4  = format.CompressionLZ4
)

// Statistics levels accepted by WithStatistics.
const (
	StatisticsNone  = format.StatisticsNone
	StatisticsChunk = format.StatisticsChunk
	StatisticsPage  = format.StatisticsPage
)

// Footer is the decoded trailing metadata of a strata file.
type Footer = section.Footer

// ParseTrailer decodes the footer of a complete file or of a standalone
// metadata blob returned by Close with a path hint.
var ParseTrailer = section.ParseTrailer

// NewWriter creates a write session over an arbitrary sink.
func NewWriter(s sink.Sink, opts ...Option) (*Writer, error) {
	return writer.New(s, opts...)
}

// NewFileWriter creates a write session over a newly created file at path.
func NewFileWriter(path string, opts ...Option) (*Writer, error) {
	s, err := sink.NewFileSink(path)
	if err != nil {
		return nil, err
	}

	return writer.New(s, opts...)
}
