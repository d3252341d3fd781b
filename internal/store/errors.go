package store

import "errors"

// Sentinel errors returned by backends and the cache. Callers match them
// with [errors.Is].
var (
	// ErrNotFound is returned when the vault object, file or cache entry
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBackendUnavailable wraps any failure to fetch from or store to a
	// backend.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrCacheUnavailable is returned when the cache directory cannot be
	// determined or created.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrBucketMissing is returned by the object store backend when the
	// destination bucket does not exist.
	ErrBucketMissing = errors.New("bucket does not exist")
)
