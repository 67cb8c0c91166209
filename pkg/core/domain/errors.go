package domain

import (
	"errors"
	"fmt"
)

// ErrCorruptArchive is returned when an archive is corrupt or unreadable
var ErrCorruptArchive = errors.New("corrupt or unreadable archive")

// ErrMalformedRecord is returned when a log record cannot be parsed
var ErrMalformedRecord = errors.New("malformed record")

// ErrMissingPosition is returned when no record carries position fields
var ErrMissingPosition = errors.New("no records with position data")

// ErrNoRecords is returned when an export is attempted on an empty set
var ErrNoRecords = errors.New("no records loaded")

// ErrInvalidStride is returned when a downsample stride is not positive
var ErrInvalidStride = errors.New("downsample stride must be >= 1")

// ExtractionError reports a failed archive. Extraction continues with the
// remaining archives; these errors are collected per file, never fatal.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError reports one malformed record. The record is skipped and
// parsing continues; Index is the 1-based record position in the file.
type ParseError struct {
	File  string
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("%s: record %d: %v", e.File, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExportError reports a failed export action: unwritable destination or
// missing required fields. It aborts only the one export; partial output
// files are untrusted.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
