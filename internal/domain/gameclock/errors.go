package gameclock

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrMalformedClock marks a clock string that cannot be parsed into
	// minutes and seconds. Processing of the game must stop: without a
	// parsed clock the remaining events cannot be ordered safely.
	ErrMalformedClock = errors.New("malformed clock string")
)
