package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrEmptyUpstream marks a fetch that reached the API but found no usable
	// rows in the payload. Distinct from ErrUpstreamTransport so callers can
	// branch on kind instead of string matching.
	ErrEmptyUpstream = errors.New("upstream returned no data")

	// ErrUpstreamTransport marks network errors, timeouts, non-2xx statuses
	// and undecodable bodies from the stats provider.
	ErrUpstreamTransport = errors.New("upstream transport failure")
)
