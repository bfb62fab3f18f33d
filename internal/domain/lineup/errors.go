package lineup

import (
	"errors"
	"fmt"
)

// ErrLineupSize is the sentinel kind for lineup cardinality violations.
var ErrLineupSize = errors.New("lineup size mismatch")

// LineupSizeError reports that the assignment pass found a number of
// matching intervals other than five for a team at an event. It signals
// either a malformed log (missing substitution, duplicate entries) or a
// defect in interval construction; a heuristic fix could mask a genuine log
// defect, so the error is always fatal.
type LineupSizeError struct {
	TeamID   int64
	EventNum int64
	Got      int
}

func (e *LineupSizeError) Error() string {
	return fmt.Sprintf("team %d at event %d: %d players on court, want 5", e.TeamID, e.EventNum, e.Got)
}

// Unwrap makes the error match ErrLineupSize under errors.Is.
func (e *LineupSizeError) Unwrap() error { return ErrLineupSize }
