package writer

import (
	"fmt"

	"github.com/arloliu/strata/endian"
	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/internal/options"
	"github.com/arloliu/strata/internal/plan"
	"github.com/arloliu/strata/schema"
	"github.com/arloliu/strata/section"
)

// Default sizing limits. Rowgroups are fixed-size independent horizontal
// partitions; rowgroups divide into pages.
const (
	DefaultMaxRowGroupBytes = 128 * 1024 * 1024
	DefaultMaxRowGroupRows  = 1_000_000
	DefaultTargetPageBytes  = 512 * 1024

	// Batch budget: at most this many pages from at most this many
	// consecutive rowgroups are encoded and staged together, bounding peak
	// staging memory regardless of table size.
	DefaultPagesInBatch     = 256
	DefaultRowGroupsInBatch = 8
)

// Config holds the session configuration, applied once at construction and
// treated as immutable by every pipeline stage.
type Config struct {
	maxRowGroupBytes int64
	maxRowGroupRows  int64
	targetPageBytes  int64
	fragmentRows     int
	pagesInBatch     int
	rowGroupsInBatch int
	compression      format.CompressionType
	statsLevel       format.StatisticsLevel
	secondTimestamps bool
	singleWrite      bool
	engine           endian.EndianEngine
	keyValue         []section.KeyValue
	hints            []schema.Hint
}

func newConfig() *Config {
	return &Config{
		maxRowGroupBytes: DefaultMaxRowGroupBytes,
		maxRowGroupRows:  DefaultMaxRowGroupRows,
		targetPageBytes:  DefaultTargetPageBytes,
		fragmentRows:     plan.DefaultFragmentRows,
		pagesInBatch:     DefaultPagesInBatch,
		rowGroupsInBatch: DefaultRowGroupsInBatch,
		compression:      format.CompressionNone,
		statsLevel:       format.StatisticsNone,
		engine:           endian.GetLittleEndianEngine(),
	}
}

// limits derives the sizing ceilings handed to the planner. The staging
// budget is one full batch of target-sized pages.
func (c *Config) limits() plan.Limits {
	return plan.Limits{
		MaxRowGroupBytes: c.maxRowGroupBytes,
		MaxRowGroupRows:  c.maxRowGroupRows,
		TargetPageBytes:  c.targetPageBytes,
		StagingBytes:     int64(c.pagesInBatch) * c.targetPageBytes,
	}
}

// effectiveFragmentRows clamps the fragment stride to the rowgroup row
// ceiling. Rowgroup boundaries are only placed at fragment boundaries, so a
// fragment wider than the ceiling would force an oversized rowgroup.
func (c *Config) effectiveFragmentRows() int {
	if int64(c.fragmentRows) > c.maxRowGroupRows {
		return int(c.maxRowGroupRows)
	}

	return c.fragmentRows
}

// tsDiv returns the divisor applied to microsecond timestamps on encode.
func (c *Config) tsDiv() int64 {
	if c.secondTimestamps {
		return 1_000_000
	}

	return 1
}

// Option is a functional option for configuring a writer session.
type Option = options.Option[*Config]

// WithMaxRowGroupBytes sets the maximum byte-size estimate of one rowgroup.
// A rowgroup boundary is inserted rather than exceeding it.
func WithMaxRowGroupBytes(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max rowgroup bytes %d", errs.ErrInvalidRowGroupLimit, n)
		}
		c.maxRowGroupBytes = n

		return nil
	})
}

// WithMaxRowGroupRows sets the maximum row count of one rowgroup.
func WithMaxRowGroupRows(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max rowgroup rows %d", errs.ErrInvalidRowGroupLimit, n)
		}
		c.maxRowGroupRows = n

		return nil
	})
}

// WithTargetPageSize sets the target byte size of one page. The target is
// advisory for output bytes: a page whose compressed payload overflows it is
// recorded as oversized and still emitted.
func WithTargetPageSize(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: target page size %d", errs.ErrInvalidPageSize, n)
		}
		c.targetPageBytes = n

		return nil
	})
}

// WithFragmentSize sets the planning fragment stride in rows. It is
// independent of rowgroup sizing.
func WithFragmentSize(rows int) Option {
	return options.New(func(c *Config) error {
		if rows <= 0 {
			return fmt.Errorf("%w: fragment size %d", errs.ErrInvalidFragmentSize, rows)
		}
		c.fragmentRows = rows

		return nil
	})
}

// WithBatchLimits sets the batch budget: the maximum count of pages and of
// consecutive rowgroups encoded together. Peak staging memory is bounded by
// one batch's footprint.
func WithBatchLimits(pages, rowGroups int) Option {
	return options.New(func(c *Config) error {
		if pages <= 0 || rowGroups <= 0 {
			return fmt.Errorf("%w: pages=%d rowgroups=%d", errs.ErrInvalidBatchLimit, pages, rowGroups)
		}
		c.pagesInBatch = pages
		c.rowGroupsInBatch = rowGroups

		return nil
	})
}

// WithCompression sets the compression kind attached to every column chunk.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, comp)
		}
	})
}

// WithStatistics sets the output statistics granularity.
func WithStatistics(level format.StatisticsLevel) Option {
	return options.New(func(c *Config) error {
		switch level {
		case format.StatisticsNone, format.StatisticsChunk, format.StatisticsPage:
			c.statsLevel = level
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidStatsLevel, level)
		}
	})
}

// WithSecondTimestamps writes timestamp columns at second rather than
// microsecond resolution, the alternate representation for consumers that
// cannot hold microsecond precision.
func WithSecondTimestamps(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.secondTimestamps = enabled
	})
}

// WithSingleWriteMode declares that the caller guarantees exactly one Write
// call before Close. It lets the pipeline skip bookkeeping needed only to
// support subsequent writes; a second Write fails with ErrSingleWriteMode.
func WithSingleWriteMode(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.singleWrite = enabled
	})
}

// WithKeyValueMetadata appends one user metadata entry to the footer.
func WithKeyValueMetadata(key, value string) Option {
	return options.NoError(func(c *Config) {
		c.keyValue = append(c.keyValue, section.KeyValue{Key: key, Value: value})
	})
}

// WithColumnHints supplies per-column metadata (name overrides, nullability
// hints) applied by position over the table-derived descriptors.
func WithColumnHints(hints []schema.Hint) Option {
	return options.NoError(func(c *Config) {
		c.hints = hints
	})
}

// WithLittleEndian sets little-endian page payloads. It is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian sets big-endian page payloads. The footer remains
// little-endian regardless.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}
