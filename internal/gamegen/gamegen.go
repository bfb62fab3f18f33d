// Package gamegen builds deterministic synthetic games with consistent
// substitution logs, used to exercise the reconstruction pipeline in tests.
package gamegen

import (
	"fmt"
	"math/rand"

	"github.com/hooplens/rotation/internal/domain/model"
)

// Config controls the shape of a generated game. Zero values fall back to
// the defaults below.
type Config struct {
	Seed          int64
	GameID        int64
	HomeTeamID    int64
	VisitorTeamID int64
	RosterSize    int // players per team, must exceed a lineup to allow subs
	Periods       int // 1-4 regulation; values above 4 add overtime periods
	SubsPerPeriod int // substitutions per team per period
}

func (c *Config) defaults() {
	if c.GameID == 0 {
		c.GameID = 1
	}
	if c.HomeTeamID == 0 {
		c.HomeTeamID = 10
	}
	if c.VisitorTeamID == 0 {
		c.VisitorTeamID = 20
	}
	if c.RosterSize == 0 {
		c.RosterSize = 9
	}
	if c.Periods == 0 {
		c.Periods = 4
	}
}

// Generate produces a game whose log reconstructs cleanly: every period
// opens with action events naming all ten starters (implicit check-ins),
// substitutions swap on-court players for bench players at distinct times,
// and every period carries a terminal period-end event.
func Generate(cfg Config) *model.Game {
	cfg.defaults()
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic generation for tests

	game := &model.Game{
		GameID:        cfg.GameID,
		HomeTeamID:    cfg.HomeTeamID,
		VisitorTeamID: cfg.VisitorTeamID,
	}
	for i := 0; i < cfg.RosterSize; i++ {
		game.HomeRoster = append(game.HomeRoster, 100+int64(i))
		game.VisitorRoster = append(game.VisitorRoster, 200+int64(i))
	}

	g := &generator{cfg: cfg, rng: rng, game: game}
	for p := 1; p <= cfg.Periods; p++ {
		g.period(p)
	}
	return game
}

type generator struct {
	cfg  Config
	rng  *rand.Rand
	game *model.Game

	eventNum int64
	homeOn   []int64
	awayOn   []int64
}

// period emits one period's worth of events in chronological order.
func (g *generator) period(p int) {
	periodSeconds := 600
	if p > 4 {
		periodSeconds = 300
	}

	// Fresh starters each period; any five are valid after a boundary.
	g.homeOn = pickFive(g.rng, g.game.HomeRoster)
	g.awayOn = pickFive(g.rng, g.game.VisitorRoster)

	// Opening actions backdate every starter's check-in to period start.
	t := periodSeconds
	for i := 0; i < model.LineupSize; i++ {
		t -= 5 + g.rng.Intn(5)
		g.emit(p, t, 1+g.rng.Intn(model.MaxActionMsgType), [3]model.Participant{
			{PlayerID: g.homeOn[i], TeamID: g.game.HomeTeamID, Valid: true},
			{PlayerID: g.awayOn[i], TeamID: g.game.VisitorTeamID, Valid: true},
		})
	}

	// Alternate substitutions and actions at strictly decreasing times so
	// no boundary ever coincides with a query time.
	for i := 0; i < g.cfg.SubsPerPeriod; i++ {
		t -= 10 + g.rng.Intn(20)
		if t <= 20 {
			break
		}
		g.substitute(p, t, true)

		t -= 10 + g.rng.Intn(20)
		if t <= 20 {
			break
		}
		g.substitute(p, t, false)

		t -= 5 + g.rng.Intn(10)
		if t <= 10 {
			break
		}
		g.action(p, t)
	}

	g.emit(p, 0, model.MsgTypePeriodEnd, [3]model.Participant{})
}

// substitute swaps a random on-court player for a random bench player.
func (g *generator) substitute(p, t int, home bool) {
	on, roster, teamID := g.awayOn, g.game.VisitorRoster, g.game.VisitorTeamID
	if home {
		on, roster, teamID = g.homeOn, g.game.HomeRoster, g.game.HomeTeamID
	}

	bench := benchOf(roster, on)
	if len(bench) == 0 {
		return
	}
	outIdx := g.rng.Intn(len(on))
	in := bench[g.rng.Intn(len(bench))]
	out := on[outIdx]
	on[outIdx] = in

	g.emit(p, t, model.MsgTypeSubstitution, [3]model.Participant{
		{PlayerID: out, TeamID: teamID, Valid: true},
		{PlayerID: in, TeamID: teamID, Valid: true},
	})
}

// action names one current on-court player per team.
func (g *generator) action(p, t int) {
	g.emit(p, t, 1+g.rng.Intn(model.MaxActionMsgType), [3]model.Participant{
		{PlayerID: g.homeOn[g.rng.Intn(len(g.homeOn))], TeamID: g.game.HomeTeamID, Valid: true},
		{PlayerID: g.awayOn[g.rng.Intn(len(g.awayOn))], TeamID: g.game.VisitorTeamID, Valid: true},
	})
}

func (g *generator) emit(period, secondsLeft, msgType int, players [3]model.Participant) {
	g.eventNum++
	g.game.Events = append(g.game.Events, model.Event{
		GameID:   g.cfg.GameID,
		EventNum: g.eventNum,
		Period:   period,
		Clock:    fmt.Sprintf("%d:%02d", secondsLeft/60, secondsLeft%60),
		MsgType:  msgType,
		Players:  players,
	})
}

func pickFive(rng *rand.Rand, roster []int64) []int64 {
	perm := rng.Perm(len(roster))
	out := make([]int64, model.LineupSize)
	for i := 0; i < model.LineupSize; i++ {
		out[i] = roster[perm[i]]
	}
	return out
}

func benchOf(roster, on []int64) []int64 {
	var bench []int64
	for _, id := range roster {
		onCourt := false
		for _, o := range on {
			if o == id {
				onCourt = true
				break
			}
		}
		if !onCourt {
			bench = append(bench, id)
		}
	}
	return bench
}
