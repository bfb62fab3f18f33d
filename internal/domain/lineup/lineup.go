// Package lineup maps every event back to the exact five-player lineup per
// team, given the finalized interval set.
package lineup

import (
	"github.com/hooplens/rotation/internal/domain/model"
)

// Assign answers "which five players per team were on court" for every
// ordered event. It requires the complete interval set: assignment cannot
// start before the state machine has consumed the whole log.
//
// Exactly five intervals must match per team per event. Anything else marks
// a malformed log or defective interval construction and is returned as a
// LineupSizeError, never silently repaired.
func Assign(game *model.Game, ordered []model.Event, intervals []model.SubstitutionInterval) ([]model.LineupRow, error) {
	home := byTeam(intervals, game.HomeTeamID)
	visitor := byTeam(intervals, game.VisitorTeamID)

	rows := make([]model.LineupRow, 0, len(ordered))
	for i := range ordered {
		ev := &ordered[i]
		row := model.LineupRow{GameID: ev.GameID, EventNum: ev.EventNum}

		if err := fill(&row.Home, home, ev, game.HomeTeamID); err != nil {
			return nil, err
		}
		if err := fill(&row.Visitor, visitor, ev, game.VisitorTeamID); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// fill selects the matching players for one team at one event and writes
// them into dst in interval order (stable across runs).
func fill(dst *[model.LineupSize]int64, intervals []model.SubstitutionInterval, ev *model.Event, teamID int64) error {
	players := onCourtAt(intervals, ev)
	if len(players) != model.LineupSize {
		return &LineupSizeError{TeamID: teamID, EventNum: ev.EventNum, Got: len(players)}
	}
	copy(dst[:], players)
	return nil
}

// onCourtAt selects the intervals spanning the event time under the
// category-specific boundary policy:
//
//   - period end: the intervals just closed by this very event, i.e.
//     TimeOut equal to the event time.
//   - substitution: half-open span that excludes the player who just left
//     (TimeOut equal to the event time) and includes the one who just
//     arrived (TimeIn equal to the event time).
//   - anything else: closed span; an overfull result falls through to the
//     continuity tie-break.
func onCourtAt(intervals []model.SubstitutionInterval, ev *model.Event) []int64 {
	t := ev.GameTimeRemaining
	var players []int64

	switch {
	case ev.IsPeriodEnd():
		for _, iv := range intervals {
			if iv.TimeOut == t {
				players = append(players, iv.PlayerID)
			}
		}
	case ev.IsSubstitution():
		for _, iv := range intervals {
			if iv.TimeIn >= t && iv.TimeOut < t {
				players = append(players, iv.PlayerID)
			}
		}
	default:
		for _, iv := range intervals {
			if iv.Contains(t) {
				players = append(players, iv.PlayerID)
			}
		}
		if len(players) > model.LineupSize {
			players = breakBoundaryTie(intervals, t)
		}
	}
	return players
}

// breakBoundaryTie resolves events whose time coincides exactly with both a
// check-in and a check-out: the closed filter counts the departing and the
// arriving player at once. The interval that starts exactly at t is dropped,
// favoring continuity of the player who had already been on court.
func breakBoundaryTie(intervals []model.SubstitutionInterval, t float64) []int64 {
	var players []int64
	for _, iv := range intervals {
		if iv.TimeIn > t && iv.TimeOut <= t {
			players = append(players, iv.PlayerID)
		}
	}
	return players
}

func byTeam(intervals []model.SubstitutionInterval, teamID int64) []model.SubstitutionInterval {
	var out []model.SubstitutionInterval
	for _, iv := range intervals {
		if iv.TeamID == teamID {
			out = append(out, iv)
		}
	}
	return out
}
