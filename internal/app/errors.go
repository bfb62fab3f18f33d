package service

import "errors"

// Sentinel error kinds for the service facade.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrDuplicateGame = errors.New("game already submitted")
	ErrQueueFull     = errors.New("job queue full")
)
