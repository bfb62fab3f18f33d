package repository

import "errors"

// Sentinel kinds for result store errors.
var (
	ErrNotFound  = errors.New("game not found")
	ErrStoreFull = errors.New("result store at capacity")
	ErrNilResult = errors.New("nil result")
)
