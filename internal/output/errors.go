package output

import "errors"

// Sentinel errors for output operations.
var (
	// ErrDirNotFound indicates the output directory does not exist.
	ErrDirNotFound = errors.New("output: directory not found")

	// ErrNotDirectory indicates the output path is not a directory.
	ErrNotDirectory = errors.New("output: not a directory")

	// ErrInvalidName indicates a file name that is empty or escapes the
	// output directory.
	ErrInvalidName = errors.New("output: invalid file name")
)
