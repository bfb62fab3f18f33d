package repository

import (
	"context"
	"sync"

	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/reconstruct"
	"github.com/hooplens/rotation/pkg/metrics"
)

// MemStore is a mutex-guarded in-memory Store. Reads vastly outnumber
// writes once a backfill finishes, so it uses an RWMutex.
type MemStore struct {
	mu       sync.RWMutex
	results  map[int64]*reconstruct.Result
	capacity int // 0 means unbounded
}

// NewMemStore creates an in-memory result store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		results: make(map[int64]*reconstruct.Result),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores a finished reconstruction.
func (s *MemStore) Put(ctx context.Context, res *reconstruct.Result) error {
	if res == nil {
		return ErrNilResult
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, replacing := s.results[res.GameID]; !replacing {
		if s.capacity > 0 && len(s.results) >= s.capacity {
			return ErrStoreFull
		}
	}
	s.results[res.GameID] = res
	metrics.UpdateStoredGames(len(s.results))
	return nil
}

// Result returns the full reconstruction for a game.
func (s *MemStore) Result(ctx context.Context, gameID int64) (*reconstruct.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[gameID]
	if !ok {
		return nil, ErrNotFound
	}
	return res, nil
}

// Lineups returns the per-event lineup table for a game.
func (s *MemStore) Lineups(ctx context.Context, gameID int64) ([]model.LineupRow, error) {
	res, err := s.Result(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return res.Lineups, nil
}

// Intervals returns the on-court interval set for a game.
func (s *MemStore) Intervals(ctx context.Context, gameID int64) ([]model.SubstitutionInterval, error) {
	res, err := s.Result(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return res.Intervals, nil
}

// Count returns the number of games held.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
