// Package sequence orders raw play-by-play events into strict processing
// order.
package sequence

import (
	"fmt"
	"sort"

	"github.com/hooplens/rotation/internal/domain/gameclock"
	"github.com/hooplens/rotation/internal/domain/model"
)

// Order returns a copy of events sorted into game chronology and attaches
// the normalized GameTimeRemaining to each returned event. The input slice
// is not modified.
//
// Game time remaining alone is ambiguous across period boundaries (the
// overtime clock resets, and two periods can carry equal values), so the
// ordering key is: remaining descending, then period ascending, then
// original event number ascending. The sort is stable, though the key is
// already total because event numbers are unique.
func Order(events []model.Event) ([]model.Event, error) {
	ordered := make([]model.Event, len(events))
	copy(ordered, events)

	for i := range ordered {
		remaining, _, err := gameclock.Normalize(ordered[i].Clock, ordered[i].Period)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", ordered[i].EventNum, err)
		}
		ordered[i].GameTimeRemaining = remaining
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := &ordered[i], &ordered[j]
		if a.GameTimeRemaining != b.GameTimeRemaining {
			return a.GameTimeRemaining > b.GameTimeRemaining
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.EventNum < b.EventNum
	})

	return ordered, nil
}
