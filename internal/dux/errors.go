package dux

import "errors"

// Sentinel errors returned by Compute and Render for top-level failures.
// Deep traversal failures are never propagated; they are folded into
// Result.ErrorCount instead.
var (
	// ErrNotFound indicates the queried directory does not exist.
	ErrNotFound = errors.New("directory not found")
	// ErrPermissionDenied indicates the queried directory itself could
	// not be opened for reading.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCancelled indicates the external interrupt predicate fired
	// before aggregation finished.
	ErrCancelled = errors.New("cancelled")
)
