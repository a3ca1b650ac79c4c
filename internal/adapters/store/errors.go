package store

import "errors"

// Sentinel kinds for row-store errors.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrTableNotFound    = errors.New("table not found")
	ErrRowNotFound      = errors.New("row not found")
)
