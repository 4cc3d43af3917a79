package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamResponse    = errors.New("unexpected upstream response")

	// Cache errors
	ErrCacheMiss    = errors.New("cache miss")
	ErrCacheCorrupt = errors.New("cache entry corrupt")

	// Pipeline errors
	ErrInvariantViolation = errors.New("reconciliation invariant violated")
	ErrNoSnapshot         = errors.New("no snapshot available")

	// Query errors
	ErrInvalidWindow = errors.New("invalid booking window")
	ErrInvalidFilter = errors.New("invalid filter")
)
