// Package worker defines the worker pool that runs game reconstructions off
// the job queue.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hooplens/rotation/internal/adapters/mq/queue"
	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/reconstruct"
	"github.com/hooplens/rotation/pkg/logger"
	"github.com/hooplens/rotation/pkg/metrics"
)

// Worker shutdown timeouts.
const (
	workerShutdownTimeout = 5 * time.Second
)

// Reconstructor runs the single-game pipeline. A worker processes exactly
// one game at a time; parallelism exists only across games, never within
// one.
type Reconstructor interface {
	Reconstruct(ctx context.Context, game *model.Game) (*reconstruct.Result, error)
}

// ReconstructorFunc adapts a function to the Reconstructor interface.
type ReconstructorFunc func(ctx context.Context, game *model.Game) (*reconstruct.Result, error)

func (f ReconstructorFunc) Reconstruct(ctx context.Context, game *model.Game) (*reconstruct.Result, error) {
	return f(ctx, game)
}

// Sink receives finished reconstructions.
type Sink interface {
	Put(ctx context.Context, res *reconstruct.Result) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker consumes jobs until its queue closes or it is shut down.
type Worker struct {
	queue         Queue
	reconstructor Reconstructor
	sink          Sink
	name          string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q Queue, r Reconstructor, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:         q,
		reconstructor: r,
		sink:          sink,
		name:          "worker",
		shutdown:      make(chan struct{}),
		done:          make(chan struct{}),
		logger:        logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed",
					logger.String("jobID", job.ID.String()),
					logger.Int64("gameID", job.Game.GameID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker, waiting for any in-flight job.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process reconstructs one game and stores the result.
func (w *Worker) process(ctx context.Context, job queue.Job) error {
	start := time.Now()
	res, err := w.reconstructor.Reconstruct(ctx, job.Game)
	metrics.RecordReconstructLatency(time.Since(start).Seconds())

	if err != nil {
		metrics.RecordGameFailed()
		metrics.RecordErrorByComponent("worker", "reconstruct_error")
		return fmt.Errorf("reconstruct game %d: %w", job.Game.GameID, err)
	}

	if err := w.sink.Put(ctx, res); err != nil {
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("store game %d: %w", res.GameID, err)
	}

	metrics.RecordGameReconstructed()
	metrics.RecordLineupRows(len(res.Lineups))
	metrics.RecordIntervalsBuilt(len(res.Intervals))
	w.logger.Debug(ctx, "game reconstructed",
		logger.Int64("gameID", res.GameID),
		logger.Int("rows", len(res.Lineups)),
		logger.Int("intervals", len(res.Intervals)),
	)
	return nil
}

// Pool manages multiple workers over a shared queue.
type Pool struct {
	workers []*Worker

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers.
func NewPool(workerCount int, q Queue, r Reconstructor, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range pool.workers {
		pool.workers[i] = NewWorker(q, r, sink, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each to finish.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		select {
		case <-w.shutdown:
			// already signalled
		default:
			close(w.shutdown)
		}
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerCount(0)
}
