// Package sync implements the background catalog synchronization engine:
// it walks the remote catalog page by page and upserts each batch into
// the local cache.
package sync

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/log"
	"github.com/asteroid-belt/couchpilot/internal/models"
	"github.com/asteroid-belt/couchpilot/internal/remote"
)

// State tracks the engine's lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateRetrying
	StateSuccess
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateRetrying:
		return "retrying"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// DefaultPageSize is the bulk page size requested from the server.
	DefaultPageSize = 200
	// maxAttempts bounds the retries of a full pass. Each retry restarts
	// from page 1; upserts are idempotent so re-downloading is safe.
	maxAttempts = 3
)

// Engine performs full catalog syncs. Concurrent Sync calls coalesce
// into the pass already in flight rather than queueing.
type Engine struct {
	db       *db.DB
	svc      remote.CatalogService
	pageSize int

	mu      sync.Mutex
	running bool
	state   State
}

// NewEngine creates a sync engine. pageSize <= 0 uses the default.
func NewEngine(database *db.DB, svc remote.CatalogService, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		db:       database,
		svc:      svc,
		pageSize: pageSize,
		state:    StateIdle,
	}
}

// State returns the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Sync runs one full catalog sync with bounded retries. If a sync is
// already in progress, the call returns immediately with no error; the
// running pass covers the request. Each page's upsert is an independent
// transaction, so interactive queries stay responsive throughout.
func (e *Engine) Sync(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.state = StateRunning
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		total, err := e.runPass(ctx)
		if err == nil {
			e.setState(StateSuccess)
			e.recordSuccess(total)
			return nil
		}
		lastErr = err
		log.Errorf("sync attempt %d/%d failed: %v", attempt, maxAttempts, err)

		if ctx.Err() != nil {
			e.setState(StateFailed)
			return fmt.Errorf("sync cancelled on attempt %d: %w", attempt, ctx.Err())
		}
		if attempt < maxAttempts {
			e.setState(StateRetrying)
		}
	}

	e.setState(StateFailed)
	return fmt.Errorf("sync failed after %d attempts: %w", maxAttempts, lastErr)
}

// runPass walks the catalog from page 1 until a short or empty page and
// returns the number of items synced.
func (e *Engine) runPass(ctx context.Context) (int, error) {
	if err := e.db.ClearRemoteKeys(); err != nil {
		return 0, fmt.Errorf("clear remote keys: %w", err)
	}

	total := 0
	for page := 1; ; page++ {
		items, err := e.svc.ListCatalog(ctx, page, e.pageSize)
		if err != nil {
			return total, fmt.Errorf("list page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}

		if err := e.db.UpsertItems(items); err != nil {
			return total, fmt.Errorf("upsert page %d: %w", page, err)
		}
		if err := e.db.ReplaceRemoteKeys(pageKeys(items, page, len(items) == e.pageSize)); err != nil {
			return total, fmt.Errorf("record page keys: %w", err)
		}
		total += len(items)

		// A short page is the final one.
		if len(items) < e.pageSize {
			break
		}
	}

	return total, nil
}

// pageKeys builds the ephemeral pagination cursors for one page batch.
func pageKeys(items []models.CatalogItem, page int, hasNext bool) []models.RemoteKey {
	next := 0
	if hasNext {
		next = page + 1
	}
	keys := make([]models.RemoteKey, len(items))
	for i, item := range items {
		keys[i] = models.RemoteKey{
			ItemID:   item.ID,
			PrevPage: page - 1,
			NextPage: next,
		}
	}
	return keys
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// recordSuccess persists the sync bookkeeping; failures here only log,
// the synced data itself is already durable.
func (e *Engine) recordSuccess(total int) {
	if err := e.db.SetSyncMeta(models.SyncMetaLastFullSync, time.Now().Format(time.RFC3339)); err != nil {
		log.Errorf("record last sync time: %v", err)
	}
	if err := e.db.SetSyncMeta(models.SyncMetaTotalItems, strconv.Itoa(total)); err != nil {
		log.Errorf("record item total: %v", err)
	}
}
