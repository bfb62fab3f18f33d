// Package gameclock converts per-event clock strings into game time
// remaining.
package gameclock

import (
	"fmt"
	"strconv"
	"strings"
)

// Period length constants. These are domain constants for the league's
// format, not tunables.
const (
	regulationPeriods = 4
	regulationSeconds = 600 // 10-minute quarters
	overtimeSeconds   = 300 // 5-minute overtime periods

	secondsPerMinute = 60
)

// Normalize converts a clock string ("MM:SS", seconds may carry a fractional
// part) plus a period number into two values in seconds: the game time
// remaining at that instant, and the remaining value at the instant the
// period started (used to backdate implicit check-ins).
//
// Regulation periods count down the full remaining regulation time. Overtime
// periods are measured on their own five-minute clock with regulation
// ignored entirely, so overtime values are only comparable within a single
// period; the sequencer's period tie-break handles ordering across the
// boundary.
func Normalize(clock string, period int) (remaining, maxPeriod float64, err error) {
	if period < 1 {
		return 0, 0, fmt.Errorf("%w: period %d", ErrMalformedClock, period)
	}

	minutes, seconds, err := parseClock(clock)
	if err != nil {
		return 0, 0, err
	}

	left := float64(minutes)*secondsPerMinute + seconds
	if period > regulationPeriods {
		return left, overtimeSeconds, nil
	}

	periodTime := float64(regulationSeconds * (regulationPeriods - period))
	maxPeriod = float64(regulationSeconds * (regulationPeriods + 1 - period))
	return periodTime + left, maxPeriod, nil
}

// parseClock splits "MM:SS" into whole minutes and (possibly fractional)
// seconds.
func parseClock(clock string) (int, float64, error) {
	mm, ss, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedClock, clock)
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || minutes < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedClock, clock)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(ss), 64)
	if err != nil || seconds < 0 || seconds >= secondsPerMinute {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedClock, clock)
	}

	return minutes, seconds, nil
}
