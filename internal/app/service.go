// Package service provides the multi-game reconstruction service: a job
// queue, a worker pool and a result store wired around the single-game
// pipeline.
package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hooplens/rotation/internal/adapters/mq/queue"
	"github.com/hooplens/rotation/internal/adapters/mq/worker"
	"github.com/hooplens/rotation/internal/adapters/repository"
	"github.com/hooplens/rotation/internal/domain/dedupe"
	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/reconstruct"
	"github.com/hooplens/rotation/pkg/logger"
	"github.com/hooplens/rotation/pkg/metrics"
)

// Service reconstructs games submitted to it. Games are independent, so the
// service parallelizes across games only; each game runs on exactly one
// worker.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	deduper  dedupe.Deduper
	jobQueue *queue.InMemoryQueue
	pool     *worker.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	storeCapacity int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of reconstruction workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreCapacity caps the number of finished games kept in memory.
func WithStoreCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.storeCapacity = capacity
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 4,
		queueSize:   1024,
		dedupeSize:  10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = repository.NewMemStore(
		repository.WithCapacity(s.storeCapacity),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
	)

	s.pool = worker.NewPool(
		s.workerCount,
		s.jobQueue,
		worker.ReconstructorFunc(reconstruct.Reconstruct),
		s.store,
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "reconstruction service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service. The queue stops accepting jobs
// and the workers are signalled to exit; a job still queued at shutdown is
// dropped, and its game id stays in the idempotency cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping reconstruction service...")

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "reconstruction service stopped")
}

// Submit enqueues a game for asynchronous reconstruction and returns the
// job id. A game id already submitted is skipped (reconstruction is
// deterministic, so resubmission cannot change the stored result).
func (s *Service) Submit(ctx context.Context, game *model.Game) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return uuid.Nil, ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, game.GameID) {
		metrics.RecordGameDuplicate()
		s.logger.Debug(ctx, "duplicate game skipped", logger.Int64("gameID", game.GameID))
		return uuid.Nil, ErrDuplicateGame
	}

	job := queue.Job{ID: uuid.New(), Game: game}
	if !s.jobQueue.Enqueue(ctx, job) {
		// The game was never queued; let the caller retry it.
		s.deduper.Unrecord(ctx, game.GameID)
		return uuid.Nil, ErrQueueFull
	}

	s.logger.Debug(ctx, "game submitted",
		logger.String("jobID", job.ID.String()),
		logger.Int64("gameID", game.GameID),
	)
	return job.ID, nil
}

// Process reconstructs a game synchronously on the caller's goroutine,
// stores the result and returns it. It shares the idempotency cache with
// Submit.
func (s *Service) Process(ctx context.Context, game *model.Game) (*reconstruct.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, game.GameID) {
		metrics.RecordGameDuplicate()
		return s.store.Result(ctx, game.GameID)
	}

	res, err := reconstruct.Reconstruct(ctx, game)
	if err != nil {
		metrics.RecordGameFailed()
		s.deduper.Unrecord(ctx, game.GameID)
		return nil, err
	}
	if err := s.store.Put(ctx, res); err != nil {
		s.deduper.Unrecord(ctx, game.GameID)
		return nil, err
	}

	metrics.RecordGameReconstructed()
	metrics.RecordLineupRows(len(res.Lineups))
	metrics.RecordIntervalsBuilt(len(res.Intervals))
	return res, nil
}

// Result returns the stored reconstruction for a game.
func (s *Service) Result(ctx context.Context, gameID int64) (*reconstruct.Result, error) {
	return s.store.Result(ctx, gameID)
}

// Lineups returns the stored lineup table for a game.
func (s *Service) Lineups(ctx context.Context, gameID int64) ([]model.LineupRow, error) {
	return s.store.Lineups(ctx, gameID)
}

// Intervals returns the stored interval set for a game.
func (s *Service) Intervals(ctx context.Context, gameID int64) ([]model.SubstitutionInterval, error) {
	return s.store.Intervals(ctx, gameID)
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if s.started {
		stats["queueLength"] = s.jobQueue.Len(ctx)
		stats["storedGames"] = s.store.Count(ctx)
		stats["seenGames"] = s.deduper.Size()
	}
	return stats
}
