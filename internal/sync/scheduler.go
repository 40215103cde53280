package sync

import (
	"context"
	"sync"
	"time"

	"github.com/asteroid-belt/couchpilot/internal/log"
)

// DefaultInterval is the periodic full-sync cadence.
const DefaultInterval = 6 * time.Hour

// Online reports whether the remote server is currently reachable.
// Scheduled syncs are skipped while offline.
type Online func(ctx context.Context) bool

// Scheduler triggers the engine once at startup and then on a fixed
// interval, gated on network availability. Triggers landing during a
// running pass coalesce inside Engine.Sync.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	online   Online

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler for the engine. interval <= 0 uses
// the default; online == nil assumes always reachable.
func NewScheduler(engine *Engine, interval time.Duration, online Online) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if online == nil {
		online = func(context.Context) bool { return true }
	}
	return &Scheduler{
		engine:   engine,
		interval: interval,
		online:   online,
	}
}

// Start launches the background sync loop. Returns immediately; the
// first sync runs right away. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)
}

// Stop cancels the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	s.trigger(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if !s.online(ctx) {
		log.Errorf("sync skipped: server unreachable")
		return
	}
	if err := s.engine.Sync(ctx); err != nil && ctx.Err() == nil {
		log.Errorf("scheduled sync: %v", err)
	}
}
