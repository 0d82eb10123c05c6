package domain

import "errors"

var (
	// ErrDirectoryUnavailable signals that the directory service could not
	// be reached or authenticated against at all.
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	// ErrQueryFailed signals that a reachable directory rejected or failed
	// the scoped search (bad filter, unknown base, permission denied).
	ErrQueryFailed = errors.New("directory query failed")
)
