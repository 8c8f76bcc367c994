package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler defaults.
const (
	DefaultScoreInterval = 30 * time.Second
	DefaultBatchSize     = 10

	patternInterval = time.Hour
	cleanupInterval = 24 * time.Hour
)

// Scheduler decouples signal capture from score recomputation. Captures
// enqueue the affected identity (deduplicated); ticks drain a bounded batch
// and recompute each identity's score. Per-identity failures are logged and
// skipped so one bad identity never stalls the batch.
type Scheduler struct {
	engine    *Engine
	clock     clockwork.Clock
	interval  time.Duration
	batchSize int

	// PatternRefresh is the hourly behavioral-pattern hook. Nil means skip.
	PatternRefresh func(context.Context)

	mu      sync.Mutex
	pending []string
	queued  map[string]bool
}

// NewScheduler creates a scheduler over the engine. Zero interval or batch
// size take the defaults; a nil clock means wall clock.
func NewScheduler(e *Engine, clock clockwork.Clock, interval time.Duration, batchSize int) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultScoreInterval
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Scheduler{
		engine:    e,
		clock:     clock,
		interval:  interval,
		batchSize: batchSize,
		queued:    make(map[string]bool),
	}
}

// Enqueue marks an identity for recomputation on a future tick. An identity
// already pending is not queued twice.
func (s *Scheduler) Enqueue(identityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queued[identityID] {
		return
	}
	s.queued[identityID] = true
	s.pending = append(s.pending, identityID)
}

// Pending reports how many identities are waiting for recomputation.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// drain removes up to batchSize identities from the queue. Once drained, an
// identity may be re-enqueued by a concurrent capture; the fresh entry waits
// for the next tick, and idempotent aggregation makes any overlap harmless.
func (s *Scheduler) drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.pending)
	if n > s.batchSize {
		n = s.batchSize
	}
	batch := make([]string, n)
	copy(batch, s.pending[:n])
	s.pending = s.pending[n:]
	for _, id := range batch {
		delete(s.queued, id)
	}
	return batch
}

// Tick drains one batch and recomputes every identity in it before
// returning. Returns the number of identities processed.
func (s *Scheduler) Tick(ctx context.Context) int {
	batch := s.drain()
	for _, id := range batch {
		if _, err := s.engine.Recompute(ctx, id); err != nil {
			log.Printf("recompute %s: %v", id, err)
		}
	}
	return len(batch)
}

// Cleanup runs the daily retention sweep and re-enqueues surviving
// identities so trimmed logs are rescored.
func (s *Scheduler) Cleanup() {
	if err := s.engine.RunCleanup(s.Enqueue); err != nil {
		log.Printf("cleanup: %v", err)
	}
}

// Run drives score ticks, the hourly pattern refresh, and the daily
// retention sweep until the context is cancelled. Tickers come from the
// injected clock, so tests advance a fake clock instead of sleeping.
func (s *Scheduler) Run(ctx context.Context) {
	score := s.clock.NewTicker(s.interval)
	defer score.Stop()
	patterns := s.clock.NewTicker(patternInterval)
	defer patterns.Stop()
	cleanup := s.clock.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-score.Chan():
			s.Tick(ctx)
		case <-patterns.Chan():
			if s.PatternRefresh != nil {
				s.PatternRefresh(ctx)
			}
		case <-cleanup.Chan():
			s.Cleanup()
		}
	}
}
