// Package repository defines the finished-game result store interface and
// errors.
package repository

import (
	"context"

	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/reconstruct"
)

// Store holds completed reconstructions keyed by game id. Results are
// immutable once stored.
type Store interface {
	// Put stores a finished reconstruction. Storing the same game id again
	// replaces the previous result (reconstruction is deterministic, so the
	// replacement is identical for identical input).
	Put(ctx context.Context, res *reconstruct.Result) error

	// Result returns the full reconstruction for a game.
	// Returns ErrNotFound if the game is unknown.
	Result(ctx context.Context, gameID int64) (*reconstruct.Result, error)

	// Lineups returns the per-event lineup table for a game.
	Lineups(ctx context.Context, gameID int64) ([]model.LineupRow, error)

	// Intervals returns the on-court interval set for a game.
	Intervals(ctx context.Context, gameID int64) ([]model.SubstitutionInterval, error)

	// Count returns the number of games held.
	Count(ctx context.Context) int
}
