// Package model contains domain records passed between pipeline stages.
package model

// Event message type codes as they appear in play-by-play logs.
const (
	// MsgTypeSubstitution swaps one player out and another in.
	MsgTypeSubstitution = 8

	// MsgTypePeriodEnd closes a quarter or an overtime period.
	MsgTypePeriodEnd = 13

	// MaxActionMsgType is the highest code that counts as a live game
	// action. Codes above it (other than substitutions and period ends)
	// are administrative and carry no lineup signal.
	MaxActionMsgType = 5
)

// LineupSize is the number of players each team keeps on court.
const LineupSize = 5

// Participant is an optional player reference on an event. TeamID may be
// zero when the log does not tag the player with a team.
type Participant struct {
	PlayerID int64
	TeamID   int64
	Valid    bool
}

// Event is a single play-by-play record. All fields are fixed at ingestion
// except GameTimeRemaining, which the sequencer derives from Clock and
// Period.
type Event struct {
	GameID   int64
	EventNum int64 // unique, strictly increasing in original log order
	Period   int   // 1-4 regulation, >=5 overtime
	Clock    string
	MsgType  int
	Players  [3]Participant

	// GameTimeRemaining is seconds left in the game (or in the current
	// overtime period), attached during sequencing.
	GameTimeRemaining float64
}

// IsSubstitution reports whether the event swaps players.
func (e *Event) IsSubstitution() bool { return e.MsgType == MsgTypeSubstitution }

// IsPeriodEnd reports whether the event closes a period.
func (e *Event) IsPeriodEnd() bool { return e.MsgType == MsgTypePeriodEnd }

// IsAction reports whether the event is a live game action whose named
// participants must be on court.
func (e *Event) IsAction() bool { return e.MsgType <= MaxActionMsgType }

// SubstitutionInterval is a closed span of game time during which a player
// was on court. Time decreases toward the end of the game, so TimeIn is
// always >= TimeOut.
type SubstitutionInterval struct {
	PlayerID int64
	TeamID   int64
	TimeIn   float64
	TimeOut  float64
}

// Duration returns the seconds the interval covers.
func (s SubstitutionInterval) Duration() float64 { return s.TimeIn - s.TimeOut }

// Contains reports whether the interval spans game time t under the closed
// boundary policy.
func (s SubstitutionInterval) Contains(t float64) bool {
	return s.TimeIn >= t && s.TimeOut <= t
}

// LineupRow records the full ten-player lineup at one event.
type LineupRow struct {
	GameID   int64
	EventNum int64
	Home     [LineupSize]int64
	Visitor  [LineupSize]int64
}

// Game bundles everything needed to reconstruct one game: identifiers,
// rosters filtered by team affiliation, and the raw event log.
type Game struct {
	GameID        int64
	HomeTeamID    int64
	VisitorTeamID int64
	HomeRoster    []int64
	VisitorRoster []int64
	Events        []Event
}

// OnRoster reports whether playerID appears on either roster.
func (g *Game) OnRoster(playerID int64) bool {
	return contains(g.HomeRoster, playerID) || contains(g.VisitorRoster, playerID)
}

// OnHomeRoster reports whether playerID plays for the home team.
func (g *Game) OnHomeRoster(playerID int64) bool { return contains(g.HomeRoster, playerID) }

// OnVisitorRoster reports whether playerID plays for the visitor team.
func (g *Game) OnVisitorRoster(playerID int64) bool { return contains(g.VisitorRoster, playerID) }

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
