package plan

import (
	"runtime"

	"github.com/axiomhq/hyperloglog"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/strata/internal/hash"
	"github.com/arloliu/strata/table"
)

// StatsChunk holds min/max/null-count and a distinct-value sketch for one
// scope: a fragment, a page, or a full column chunk. All three granularities
// share this shape; page- and chunk-level values are rollups of
// fragment-level values via Merge.
//
// A StatsChunk is immutable once its scope is fully gathered or merged.
type StatsChunk struct {
	// NumValues is the count of non-null values in scope.
	NumValues int64
	// NullCount is the count of null values in scope.
	NullCount int64
	// HasMinMax reports whether Min and Max are defined. It is false for an
	// all-null scope (and for float scopes containing only NaN).
	HasMinMax bool
	Min       Scalar
	Max       Scalar

	// Sketch estimates the distinct value count. Sketches merge losslessly,
	// so the chunk-level estimate does not depend on fragment partitioning.
	Sketch *hyperloglog.Sketch
}

// NewStatsChunk creates an empty statistics chunk with a fresh sketch.
func NewStatsChunk() StatsChunk {
	return StatsChunk{Sketch: hyperloglog.New14()}
}

// observe folds one non-excluded scalar into the extremes.
func (s *StatsChunk) observe(v Scalar) {
	if !s.HasMinMax {
		s.Min, s.Max = v, v
		s.HasMinMax = true

		return
	}
	if v.Less(s.Min) {
		s.Min = v
	}
	if s.Max.Less(v) {
		s.Max = v
	}
}

// Merge folds other into s. Merging is associative and order-independent
// (min/max/count aggregation plus sketch union), so any partition of a row
// range into fragments rolls up to the same chunk-level statistics.
func (s *StatsChunk) Merge(other *StatsChunk) {
	s.NumValues += other.NumValues
	s.NullCount += other.NullCount

	if other.HasMinMax {
		s.observe(other.Min)
		s.observe(other.Max)
	}

	if s.Sketch != nil && other.Sketch != nil {
		// Merge only fails on precision mismatch; all sketches here are
		// created by NewStatsChunk with identical precision.
		_ = s.Sketch.Merge(other.Sketch)
	}
}

// DistinctEstimate returns the estimated distinct value count in scope.
func (s *StatsChunk) DistinctEstimate() int64 {
	if s.Sketch == nil {
		return 0
	}

	return int64(s.Sketch.Estimate())
}

// GatherFragmentStats scans one fragment and produces its statistics chunk.
// Nulls are excluded from extremes and counted in NullCount; an all-null
// fragment yields HasMinMax == false rather than an error.
func GatherFragmentStats(col *table.Column, frag Fragment) StatsChunk {
	s := NewStatsChunk()

	var key []byte
	for row := frag.StartRow; row < frag.StartRow+frag.NumRows; row++ {
		if col.IsNull(row) {
			s.NullCount++
			continue
		}
		s.NumValues++

		key = AppendValueKey(key[:0], col, row)
		s.Sketch.InsertHash(hash.Sum(key))

		if v, ok := scalarAt(col, row); ok {
			s.observe(v)
		}
	}

	return s
}

// GatherStatistics computes one StatsChunk per fragment in the grid.
//
// Fragments are independent, so gathering runs one goroutine per column,
// bounded by GOMAXPROCS. No cross-fragment state exists; the only
// synchronization point is the final Wait.
func GatherStatistics(t *table.Table, frags [][]Fragment) ([][]StatsChunk, error) {
	grid := make([][]StatsChunk, len(frags))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for ci := range frags {
		ci := ci
		grid[ci] = make([]StatsChunk, len(frags[ci]))

		g.Go(func() error {
			col := t.Column(ci)
			for fi := range frags[ci] {
				grid[ci][fi] = GatherFragmentStats(col, frags[ci][fi])
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return grid, nil
}
