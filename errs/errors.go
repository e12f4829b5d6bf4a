// Package errs defines the sentinel errors returned by the strata writer.
//
// All errors produced by this module either are one of these sentinels or
// wrap one with fmt.Errorf("%w: ...") so callers can match them with
// errors.Is.
package errs

import "errors"

var (
	// ErrWriterClosed is returned when Write is called on a closed session,
	// or on a session poisoned by an earlier sink failure.
	ErrWriterClosed = errors.New("writer is closed")

	// ErrSchemaMismatch is returned when a table presented to Write has a
	// flattened schema different from the first table written in the session.
	ErrSchemaMismatch = errors.New("table schema does not match session schema")

	// ErrSingleWriteMode is returned by a second Write call on a session
	// constructed with single-write mode enabled.
	ErrSingleWriteMode = errors.New("session allows exactly one write")

	// ErrPageTooLarge is returned when a single unsplittable page footprint
	// exceeds the configured batch staging budget.
	ErrPageTooLarge = errors.New("page footprint exceeds batch memory budget")

	// ErrEmptyTable is returned when Write is called with a nil table or a
	// table with no columns.
	ErrEmptyTable = errors.New("table has no columns")

	// ErrSinkFailure wraps an append or flush error reported by the sink.
	ErrSinkFailure = errors.New("sink write failed")

	// Configuration errors, detected at construction.
	ErrInvalidRowGroupLimit = errors.New("invalid rowgroup size limit")
	ErrInvalidPageSize      = errors.New("invalid target page size")
	ErrInvalidFragmentSize  = errors.New("invalid fragment size")
	ErrInvalidBatchLimit    = errors.New("invalid batch size limit")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrInvalidStatsLevel    = errors.New("invalid statistics level")

	// Input model errors.
	ErrColumnLengthMismatch = errors.New("columns have mismatched row counts")
	ErrInvalidColumnType    = errors.New("invalid column physical type")

	// Footer decode errors.
	ErrInvalidFooter = errors.New("invalid footer")
	ErrInvalidMagic  = errors.New("invalid magic marker")
)
