// Package timebank runs the lineup/time-bank state machine: a single
// forward pass over ordered events that produces every player's on-court
// intervals.
package timebank

import (
	"fmt"

	"github.com/hooplens/rotation/internal/domain/gameclock"
	"github.com/hooplens/rotation/internal/domain/model"
)

// courtState is a player's current check-in state: either on court since a
// given game time, or off court. Modeled as a tagged pair rather than a
// nullable timestamp so transitions stay explicit.
type courtState struct {
	on    bool
	since float64
}

// record accumulates one player's court time across the game. The check-in
// and check-out histories are parallel: equal length while the player is off
// court, check-ins one longer while on court. periods records which period
// each closed interval belonged to.
type record struct {
	playerID    int64
	teamID      int64
	playingTime float64

	state    courtState
	checkIns []float64
	outs     []float64
	periods  []int
}

// checkIn opens an interval at game time t.
func (r *record) checkIn(t float64) {
	r.state = courtState{on: true, since: t}
	r.checkIns = append(r.checkIns, t)
}

// checkOut closes the open interval at game time t during period p. A
// player subbed out without any recorded check-in has been on court since
// the period began; the check-in is backdated to maxPeriod.
func (r *record) checkOut(t, maxPeriod float64, p int) {
	if !r.state.on {
		r.playingTime += maxPeriod - t
		r.checkIns = append(r.checkIns, maxPeriod)
	} else {
		r.playingTime += r.state.since - t
	}
	r.state = courtState{}
	r.outs = append(r.outs, t)
	r.periods = append(r.periods, p)
}

// Bank is the finalized output of the state machine.
type Bank struct {
	// Intervals holds every closed on-court interval, grouped by player in
	// roster order (home roster first), each player's intervals ordered by
	// decreasing TimeIn.
	Intervals []model.SubstitutionInterval

	// PlayingTime is the independently accumulated total court time per
	// player, in seconds. Summing a player's interval durations must equal
	// this counter.
	PlayingTime map[int64]float64
}

// machine carries the mutable per-team and per-player state for one pass.
// Updates are strictly order dependent, so a machine must never be shared
// or driven concurrently.
type machine struct {
	game *model.Game

	records map[int64]*record
	homeOn  []int64
	awayOn  []int64
	period  int
}

// Build consumes the ordered event stream and returns the complete interval
// set. Events must already be in processing order (see package sequence).
func Build(game *model.Game, ordered []model.Event) (*Bank, error) {
	m := &machine{
		game:    game,
		records: make(map[int64]*record, len(game.HomeRoster)+len(game.VisitorRoster)),
		period:  1,
	}
	for _, id := range game.HomeRoster {
		m.records[id] = &record{playerID: id, teamID: game.HomeTeamID}
	}
	for _, id := range game.VisitorRoster {
		m.records[id] = &record{playerID: id, teamID: game.VisitorTeamID}
	}

	for i := range ordered {
		if err := m.step(&ordered[i]); err != nil {
			return nil, err
		}
	}

	return m.finalize()
}

// step applies a single event to the machine.
func (m *machine) step(ev *model.Event) error {
	remaining, maxPeriod, err := gameclock.Normalize(ev.Clock, ev.Period)
	if err != nil {
		return fmt.Errorf("event %d: %w", ev.EventNum, err)
	}

	switch {
	case ev.IsSubstitution():
		return m.substitute(ev, remaining, maxPeriod)
	case ev.IsPeriodEnd():
		m.endPeriod(remaining, maxPeriod)
		return nil
	case ev.IsAction():
		return m.discover(ev, maxPeriod)
	default:
		return nil
	}
}

// substitute closes the outgoing player's interval and opens the incoming
// player's. The team tag rides on the outgoing player.
func (m *machine) substitute(ev *model.Event, remaining, maxPeriod float64) error {
	out, in := ev.Players[0], ev.Players[1]
	outRec, ok := m.records[out.PlayerID]
	if !ok {
		return &UnknownParticipantError{PlayerID: out.PlayerID, EventNum: ev.EventNum}
	}
	inRec, ok := m.records[in.PlayerID]
	if !ok {
		return &UnknownParticipantError{PlayerID: in.PlayerID, EventNum: ev.EventNum}
	}

	if out.TeamID == m.game.HomeTeamID {
		m.homeOn = remove(m.homeOn, out.PlayerID)
		m.homeOn = add(m.homeOn, in.PlayerID)
	} else {
		m.awayOn = remove(m.awayOn, out.PlayerID)
		m.awayOn = add(m.awayOn, in.PlayerID)
	}

	outRec.checkOut(remaining, maxPeriod, m.period)
	inRec.checkIn(remaining)
	return nil
}

// endPeriod closes every on-court player's interval at the event time,
// clears both on-court sets and advances the period counter. On-court
// players always have an open check-in, so the implicit-starter branch of
// checkOut never fires here.
func (m *machine) endPeriod(remaining, maxPeriod float64) {
	for _, id := range m.homeOn {
		m.records[id].checkOut(remaining, maxPeriod, m.period)
	}
	for _, id := range m.awayOn {
		m.records[id].checkOut(remaining, maxPeriod, m.period)
	}
	m.period++
	m.homeOn = nil
	m.awayOn = nil
}

// discover handles live game actions. The log never states period-opening
// lineups, so the first action naming a player within a period doubles as
// that player's check-in, backdated to the period start.
func (m *machine) discover(ev *model.Event, maxPeriod float64) error {
	for _, p := range ev.Players {
		if !p.Valid {
			continue
		}
		switch {
		case m.game.OnHomeRoster(p.PlayerID):
			if !has(m.homeOn, p.PlayerID) {
				m.homeOn = append(m.homeOn, p.PlayerID)
				m.records[p.PlayerID].checkIn(maxPeriod)
			}
		case m.game.OnVisitorRoster(p.PlayerID):
			if !has(m.awayOn, p.PlayerID) {
				m.awayOn = append(m.awayOn, p.PlayerID)
				m.records[p.PlayerID].checkIn(maxPeriod)
			}
		default:
			// Dropping the participant silently would surface much later
			// as a lineup size mismatch; fail at the source instead.
			return &UnknownParticipantError{PlayerID: p.PlayerID, EventNum: ev.EventNum}
		}
	}
	return nil
}

// finalize verifies every interval was closed and zips the parallel
// histories into SubstitutionIntervals.
func (m *machine) finalize() (*Bank, error) {
	bank := &Bank{PlayingTime: make(map[int64]float64, len(m.records))}

	for _, roster := range [][]int64{m.game.HomeRoster, m.game.VisitorRoster} {
		for _, id := range roster {
			rec := m.records[id]
			if rec.state.on {
				return nil, &UnterminatedIntervalError{PlayerID: id}
			}
			for i := range rec.outs {
				bank.Intervals = append(bank.Intervals, model.SubstitutionInterval{
					PlayerID: rec.playerID,
					TeamID:   rec.teamID,
					TimeIn:   rec.checkIns[i],
					TimeOut:  rec.outs[i],
				})
			}
			bank.PlayingTime[id] = rec.playingTime
		}
	}

	return bank, nil
}

func has(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func add(ids []int64, id int64) []int64 {
	if has(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
