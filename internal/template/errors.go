package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrMalformedTemplate indicates the repeating-section markers are
	// missing or out of order.
	ErrMalformedTemplate = errors.New("template: malformed template")

	// ErrUnresolvedToken indicates a $LINE token had no matching field and
	// strict rendering was requested.
	ErrUnresolvedToken = errors.New("template: unresolved token")
)
