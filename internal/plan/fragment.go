// Package plan implements the control-plane stages that run ahead of the
// batch encoder: page fragmentation, fragment statistics, rowgroup and page
// sizing with dictionary decisions, and encoder page layout.
//
// All sizing and statistics decisions are made here, before a single output
// byte is produced, so the batch encoder can run as a one-shot bounded loop.
package plan

import "github.com/arloliu/strata/table"

// DefaultFragmentRows is the default fragment stride in rows. Fragments are
// the planning granule: statistics and size estimates are first computed per
// fragment and rolled up from there. The stride is independent of rowgroup
// sizing.
const DefaultFragmentRows = 5000

// Fragment is a contiguous run of rows for one column, with its estimated
// encoded size. Fragments exist only during planning and are discarded once
// pages are laid out.
type Fragment struct {
	Column   int
	StartRow int
	NumRows  int
	RawBytes int64
}

// NumFragments returns the number of fixed-stride fragments covering
// numRows rows. The last fragment may be short.
func NumFragments(numRows, fragmentRows int) int {
	return (numRows + fragmentRows - 1) / fragmentRows
}

// BuildFragments splits each column of the table into fixed-stride row
// fragments and estimates the raw encoded size of each.
//
// The partition is deterministic: identical row counts and stride always
// produce identical fragment boundaries. The returned grid is indexed
// [column][fragment] and every column has the same fragment boundaries.
func BuildFragments(t *table.Table, fragmentRows int) [][]Fragment {
	numRows := t.NumRows()
	numFrags := NumFragments(numRows, fragmentRows)

	grid := make([][]Fragment, t.NumColumns())
	for ci := range grid {
		col := t.Column(ci)
		frags := make([]Fragment, numFrags)
		for fi := 0; fi < numFrags; fi++ {
			start := fi * fragmentRows
			n := fragmentRows
			if start+n > numRows {
				n = numRows - start
			}

			var raw int64
			for row := start; row < start+n; row++ {
				raw += int64(col.ValueBytes(row))
			}
			// Validity bitmap share of this fragment.
			raw += int64((n + 7) / 8)

			frags[fi] = Fragment{
				Column:   ci,
				StartRow: start,
				NumRows:  n,
				RawBytes: raw,
			}
		}
		grid[ci] = frags
	}

	return grid
}
