package cache

import "errors"

var (
	// ErrKeyEncoding is returned when query arguments cannot be normalized
	// into a cache key.
	ErrKeyEncoding = errors.New("failed to encode cache key")
	// ErrNoFetcher is returned when a query has no fetch function, neither
	// passed in nor remembered from an earlier query for the same key.
	ErrNoFetcher = errors.New("no fetch function for cache key")
	// ErrTypeMismatch is returned when an entry's data does not have the
	// type the caller asked for.
	ErrTypeMismatch = errors.New("cache entry holds a different type")
)
