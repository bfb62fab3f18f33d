// Package dedupe defines the interface for game-level idempotency tracking.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen game ids so a game submitted twice is reconstructed
// once. Reconstruction is deterministic, so skipping a duplicate never loses
// information.
type Deduper interface {
	// SeenAndRecord atomically checks if gameID was seen and records it if
	// not. Returns true if gameID was already seen, false if it was newly
	// recorded.
	SeenAndRecord(ctx context.Context, gameID int64) bool

	// Unrecord removes a game id from the seen set, allowing resubmission.
	// Used when a submission was recorded but never enqueued (e.g. queue
	// backpressure).
	Unrecord(ctx context.Context, gameID int64)

	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus an insertion-order ring
// for bounded eviction. maxSize <= 0 disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[int64]struct{}
	order   []int64 // insertion order, oldest first; only kept in bounded mode
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration
// options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 10_000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[int64]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, gameID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[gameID]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictOldest()
		}
		d.order = append(d.order, gameID)
	}
	d.seen[gameID] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(ctx context.Context, gameID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[gameID]; !exists {
		return
	}
	delete(d.seen, gameID)
	d.size.Add(-1)
	for i, id := range d.order {
		if id == gameID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// evictOldest drops the oldest recorded id. Must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		oldest := d.order[0]
		d.order = d.order[1:]
		if _, exists := d.seen[oldest]; exists {
			delete(d.seen, oldest)
			d.size.Add(-1)
			return
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
