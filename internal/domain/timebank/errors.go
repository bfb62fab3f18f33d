package timebank

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrUnknownParticipant marks an event naming a player absent from both
	// rosters. This is a data-integrity defect in the log, never repaired.
	ErrUnknownParticipant = errors.New("participant not on either roster")

	// ErrUnterminatedInterval marks a log that ended with a player still
	// checked in, i.e. the terminal period-end event is missing.
	ErrUnterminatedInterval = errors.New("player still checked in at end of log")
)

// UnknownParticipantError identifies the offending player and event.
type UnknownParticipantError struct {
	PlayerID int64
	EventNum int64
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("event %d: player %d not on either roster", e.EventNum, e.PlayerID)
}

// Unwrap makes the error match ErrUnknownParticipant under errors.Is.
func (e *UnknownParticipantError) Unwrap() error { return ErrUnknownParticipant }

// UnterminatedIntervalError identifies the player left checked in.
type UnterminatedIntervalError struct {
	PlayerID int64
}

func (e *UnterminatedIntervalError) Error() string {
	return fmt.Sprintf("player %d still checked in at end of log", e.PlayerID)
}

// Unwrap makes the error match ErrUnterminatedInterval under errors.Is.
func (e *UnterminatedIntervalError) Unwrap() error { return ErrUnterminatedInterval }
