package generator

import "errors"

// Sentinel errors for generator runs.
var (
	// ErrInputNotFound indicates the line file does not exist.
	ErrInputNotFound = errors.New("generator: input file not found")

	// ErrTemplateNotFound indicates the template file does not exist.
	ErrTemplateNotFound = errors.New("generator: template file not found")

	// ErrDuplicateDevice indicates two groups map to the same device
	// identifier, which would make one configuration overwrite the other.
	ErrDuplicateDevice = errors.New("generator: duplicate device identifier")

	// ErrInvalidRequest indicates a request missing required settings.
	ErrInvalidRequest = errors.New("generator: invalid request")
)
