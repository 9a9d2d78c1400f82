package query

import "errors"

var (
	// ErrTypeMismatch is returned when a key holds data of a different type
	// than the one requested.
	ErrTypeMismatch = errors.New("query: cached data has unexpected type")
	// ErrNoFetcher is returned by [Fetch] when Options.Fn is nil.
	ErrNoFetcher = errors.New("query: no fetch function")
)
