package lineimport

import "errors"

// Sentinel errors for line import operations.
var (
	// ErrUnsupportedFormat indicates the file is neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("lineimport: unsupported file format")

	// ErrNoHeader indicates the input has no header row.
	ErrNoHeader = errors.New("lineimport: missing header row")

	// ErrDuplicateColumn indicates two header cells share a name.
	ErrDuplicateColumn = errors.New("lineimport: duplicate column")

	// ErrMissingColumn indicates a required column is absent or blank for a row.
	ErrMissingColumn = errors.New("lineimport: missing required column")

	// ErrSheetNotFound indicates the requested worksheet does not exist.
	ErrSheetNotFound = errors.New("lineimport: sheet not found")
)
