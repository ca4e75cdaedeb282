package hosting

import "errors"

// Hosting provider errors.
var (
	// ErrAuthFailed is returned when authentication fails.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
)
