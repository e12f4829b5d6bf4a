// Package table defines the in-memory columnar input model consumed by the
// strata writer.
//
// A Table is a set of equally-sized leaf columns. Columns hold typed value
// slices plus an optional validity slice marking nulls. Tables are cheap to
// slice by row range: slicing reuses the underlying value storage.
package table

import (
	"fmt"
	"time"

	"github.com/arloliu/strata/errs"
	"github.com/arloliu/strata/format"
)

// Column is a single typed leaf column.
//
// Exactly one of the typed value slices is populated, matching the physical
// type. The valid slice is either nil (no nulls) or has one entry per row
// with false marking a null value.
type Column struct {
	name string
	typ  format.PhysicalType

	bools    []bool
	int32s   []int32
	int64s   []int64
	float32s []float32
	float64s []float64
	strings  []string
	times    []int64 // microseconds since Unix epoch

	valid []bool
}

// NewBoolColumn creates a boolean column. valid may be nil when the column
// has no nulls.
func NewBoolColumn(name string, values []bool, valid []bool) Column {
	return Column{name: name, typ: format.TypeBool, bools: values, valid: valid}
}

// NewInt32Column creates a 32-bit integer column.
func NewInt32Column(name string, values []int32, valid []bool) Column {
	return Column{name: name, typ: format.TypeInt32, int32s: values, valid: valid}
}

// NewInt64Column creates a 64-bit integer column.
func NewInt64Column(name string, values []int64, valid []bool) Column {
	return Column{name: name, typ: format.TypeInt64, int64s: values, valid: valid}
}

// NewFloat32Column creates a 32-bit float column.
func NewFloat32Column(name string, values []float32, valid []bool) Column {
	return Column{name: name, typ: format.TypeFloat32, float32s: values, valid: valid}
}

// NewFloat64Column creates a 64-bit float column.
func NewFloat64Column(name string, values []float64, valid []bool) Column {
	return Column{name: name, typ: format.TypeFloat64, float64s: values, valid: valid}
}

// NewStringColumn creates a variable-length string column.
func NewStringColumn(name string, values []string, valid []bool) Column {
	return Column{name: name, typ: format.TypeString, strings: values, valid: valid}
}

// NewTimestampColumn creates a timestamp column from time.Time values.
// Timestamps are held at microsecond resolution.
func NewTimestampColumn(name string, values []time.Time, valid []bool) Column {
	micros := make([]int64, len(values))
	for i, v := range values {
		micros[i] = v.UnixMicro()
	}

	return Column{name: name, typ: format.TypeTimestamp, times: micros, valid: valid}
}

// NewTimestampMicrosColumn creates a timestamp column from raw microsecond
// values, avoiding the time.Time conversion for callers that already hold
// epoch integers.
func NewTimestampMicrosColumn(name string, micros []int64, valid []bool) Column {
	return Column{name: name, typ: format.TypeTimestamp, times: micros, valid: valid}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the physical type of the column.
func (c *Column) Type() format.PhysicalType { return c.typ }

// NumRows returns the number of rows in the column, nulls included.
func (c *Column) NumRows() int {
	switch c.typ {
	case format.TypeBool:
		return len(c.bools)
	case format.TypeInt32:
		return len(c.int32s)
	case format.TypeInt64:
		return len(c.int64s)
	case format.TypeFloat32:
		return len(c.float32s)
	case format.TypeFloat64:
		return len(c.float64s)
	case format.TypeString:
		return len(c.strings)
	case format.TypeTimestamp:
		return len(c.times)
	default:
		return 0
	}
}

// IsNull reports whether the value at row is null.
func (c *Column) IsNull(row int) bool {
	return c.valid != nil && !c.valid[row]
}

// HasNulls reports whether the column carries a validity slice.
// A column with a validity slice may still contain zero nulls.
func (c *Column) HasNulls() bool {
	return c.valid != nil
}

// Typed accessors. Each returns the backing slice for its physical type and
// must only be called when Type() matches.

func (c *Column) Bools() []bool       { return c.bools }
func (c *Column) Int32s() []int32     { return c.int32s }
func (c *Column) Int64s() []int64     { return c.int64s }
func (c *Column) Float32s() []float32 { return c.float32s }
func (c *Column) Float64s() []float64 { return c.float64s }
func (c *Column) Strings() []string   { return c.strings }

// TimestampMicros returns the backing microsecond slice of a timestamp column.
func (c *Column) TimestampMicros() []int64 { return c.times }

// ValueBytes returns the estimated encoded size of the value at row,
// ignoring nulls (a null contributes only its validity bit).
func (c *Column) ValueBytes(row int) int {
	if c.IsNull(row) {
		return 0
	}
	if c.typ == format.TypeString {
		// Length prefix plus payload.
		return 4 + len(c.strings[row])
	}

	return c.typ.Width()
}

// Slice returns a zero-copy view of rows [start, end).
func (c *Column) Slice(start, end int) Column {
	out := Column{name: c.name, typ: c.typ}
	if c.valid != nil {
		out.valid = c.valid[start:end]
	}

	switch c.typ {
	case format.TypeBool:
		out.bools = c.bools[start:end]
	case format.TypeInt32:
		out.int32s = c.int32s[start:end]
	case format.TypeInt64:
		out.int64s = c.int64s[start:end]
	case format.TypeFloat32:
		out.float32s = c.float32s[start:end]
	case format.TypeFloat64:
		out.float64s = c.float64s[start:end]
	case format.TypeString:
		out.strings = c.strings[start:end]
	case format.TypeTimestamp:
		out.times = c.times[start:end]
	}

	return out
}

// Table is an ordered set of equally-sized columns.
type Table struct {
	cols    []Column
	numRows int
}

// New creates a Table from the given columns.
//
// Returns:
//   - *Table: Table wrapping the columns
//   - error: ErrEmptyTable if no columns given, ErrInvalidColumnType for an
//     unknown physical type, or ErrColumnLengthMismatch if row counts differ
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, errs.ErrEmptyTable
	}

	numRows := cols[0].NumRows()
	for i := range cols {
		if !cols[i].typ.Valid() {
			return nil, fmt.Errorf("%w: column %q", errs.ErrInvalidColumnType, cols[i].name)
		}
		if cols[i].NumRows() != numRows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				errs.ErrColumnLengthMismatch, cols[i].name, cols[i].NumRows(), numRows)
		}
		if cols[i].valid != nil && len(cols[i].valid) != numRows {
			return nil, fmt.Errorf("%w: column %q validity has %d entries, expected %d",
				errs.ErrColumnLengthMismatch, cols[i].name, len(cols[i].valid), numRows)
		}
	}

	return &Table{cols: cols, numRows: numRows}, nil
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int { return t.numRows }

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int { return len(t.cols) }

// Column returns the i-th column.
func (t *Table) Column(i int) *Column { return &t.cols[i] }

// Slice returns a zero-copy view of rows [start, end) across all columns.
func (t *Table) Slice(start, end int) *Table {
	cols := make([]Column, len(t.cols))
	for i := range t.cols {
		cols[i] = t.cols[i].Slice(start, end)
	}

	return &Table{cols: cols, numRows: end - start}
}
