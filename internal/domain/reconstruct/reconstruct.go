// Package reconstruct wires the pipeline stages for a single game:
// sequencing, interval construction and lineup assignment.
package reconstruct

import (
	"context"
	"fmt"

	"github.com/hooplens/rotation/internal/domain/lineup"
	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/sequence"
	"github.com/hooplens/rotation/internal/domain/timebank"
)

// Result is the complete reconstruction of one game. Lineups holds exactly
// one row per input event.
type Result struct {
	GameID      int64
	Intervals   []model.SubstitutionInterval
	Lineups     []model.LineupRow
	PlayingTime map[int64]float64
}

// Reconstruct runs the full pipeline for one game. The computation is pure,
// deterministic for a given input order, and strictly sequential: the state
// machine's updates are order dependent, and assignment needs the finalized
// interval set, so neither pass may be parallelized within a game.
//
// On any inconsistency the game fails outright; a partial lineup table is
// unsafe for downstream analysis that assumes five-per-team completeness.
func Reconstruct(ctx context.Context, game *model.Game) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reconstruct game %d: %w", game.GameID, err)
	}
	if err := validate(game); err != nil {
		return nil, err
	}

	ordered, err := sequence.Order(game.Events)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", game.GameID, err)
	}

	bank, err := timebank.Build(game, ordered)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", game.GameID, err)
	}

	rows, err := lineup.Assign(game, ordered, bank.Intervals)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", game.GameID, err)
	}

	return &Result{
		GameID:      game.GameID,
		Intervals:   bank.Intervals,
		Lineups:     rows,
		PlayingTime: bank.PlayingTime,
	}, nil
}

// validate rejects games that cannot possibly reconstruct.
func validate(game *model.Game) error {
	if game.HomeTeamID == game.VisitorTeamID {
		return fmt.Errorf("game %d: %w: identical team ids", game.GameID, ErrInvalidGame)
	}
	if len(game.HomeRoster) < model.LineupSize || len(game.VisitorRoster) < model.LineupSize {
		return fmt.Errorf("game %d: %w: roster smaller than a lineup", game.GameID, ErrInvalidGame)
	}
	return nil
}
