package sync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/models"
)

// fakeCatalog serves a fixed item count split into pages and can be
// told to fail the first n ListCatalog calls.
type fakeCatalog struct {
	mu        gosync.Mutex
	itemCount int
	failFirst int
	calls     int
	gate      chan struct{} // when set, ListCatalog blocks until closed
	onList    func()        // when set, runs at the start of every ListCatalog
}

func (f *fakeCatalog) ListCatalog(ctx context.Context, page, pageSize int) ([]models.CatalogItem, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failFirst
	gate := f.gate
	onList := f.onList
	f.mu.Unlock()

	if onList != nil {
		onList()
	}
	if gate != nil {
		<-gate
	}
	if fail {
		return nil, errors.New("server hiccup")
	}

	start := (page - 1) * pageSize
	if start >= f.itemCount {
		return nil, nil
	}
	end := start + pageSize
	if end > f.itemCount {
		end = f.itemCount
	}

	items := make([]models.CatalogItem, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, models.CatalogItem{
			ID:    fmt.Sprintf("imdb://tt%07d", i),
			Title: fmt.Sprintf("Item %d", i),
			Kind:  models.KindMovie,
		})
	}
	return items, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestSync_FullPass(t *testing.T) {
	database := testDB(t)
	svc := &fakeCatalog{itemCount: 25}
	engine := NewEngine(database, svc, 10)

	err := engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, engine.State())

	count, err := database.CountItems()
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)

	// Pages of 10, 10, 5; the short page terminates the walk without an
	// extra empty-page fetch.
	assert.Equal(t, 3, svc.listCalls())

	total, err := database.GetSyncMeta(models.SyncMetaTotalItems)
	require.NoError(t, err)
	assert.Equal(t, "25", total)
	last, err := database.GetSyncMeta(models.SyncMetaLastFullSync)
	require.NoError(t, err)
	assert.NotEmpty(t, last)
}

func TestSync_ExactPageBoundary(t *testing.T) {
	database := testDB(t)
	svc := &fakeCatalog{itemCount: 20}
	engine := NewEngine(database, svc, 10)

	require.NoError(t, engine.Sync(context.Background()))

	count, err := database.CountItems()
	require.NoError(t, err)
	assert.Equal(t, int64(20), count)

	// Two full pages, then one empty fetch to notice the end.
	assert.Equal(t, 3, svc.listCalls())
}

func TestSync_EmptyCatalog(t *testing.T) {
	database := testDB(t)
	engine := NewEngine(database, &fakeCatalog{itemCount: 0}, 10)

	require.NoError(t, engine.Sync(context.Background()))
	assert.Equal(t, StateSuccess, engine.State())

	total, err := database.GetSyncMeta(models.SyncMetaTotalItems)
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}

func TestSync_RetriesThenSucceeds(t *testing.T) {
	database := testDB(t)
	svc := &fakeCatalog{itemCount: 5, failFirst: 2}
	engine := NewEngine(database, svc, 10)

	err := engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, engine.State())

	count, err := database.CountItems()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestSync_FailsAfterBoundedAttempts(t *testing.T) {
	database := testDB(t)
	svc := &fakeCatalog{itemCount: 5, failFirst: 1000}
	engine := NewEngine(database, svc, 10)

	err := engine.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, engine.State())
	assert.Equal(t, 3, svc.listCalls())

	// Bookkeeping untouched on failure.
	total, err := database.GetSyncMeta(models.SyncMetaTotalItems)
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}

func TestSync_CancelledMidAttempt(t *testing.T) {
	database := testDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first attempt fails with the context already cancelled. The
	// engine must stop there instead of burning the remaining retries,
	// and the error must say cancelled, not exhausted.
	svc := &fakeCatalog{itemCount: 5, failFirst: 1000, onList: cancel}
	engine := NewEngine(database, svc, 10)

	err := engine.Sync(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "cancelled on attempt 1")
	assert.Equal(t, 1, svc.listCalls())
	assert.Equal(t, StateFailed, engine.State())
}

func TestSync_RetryNeverDuplicates(t *testing.T) {
	database := testDB(t)
	// Two failed attempts, then a clean pass re-downloading everything.
	// Upserts keep the replayed rows duplicate-free.
	svc := &fakeCatalog{itemCount: 15, failFirst: 2}
	engine := NewEngine(database, svc, 10)

	err := engine.Sync(context.Background())
	require.NoError(t, err)

	count, err := database.CountItems()
	require.NoError(t, err)
	assert.Equal(t, int64(15), count)
}

func TestSync_Coalesces(t *testing.T) {
	database := testDB(t)
	gate := make(chan struct{})
	svc := &fakeCatalog{itemCount: 5, gate: gate}
	engine := NewEngine(database, svc, 10)

	done := make(chan error, 1)
	go func() { done <- engine.Sync(context.Background()) }()

	// Wait for the first pass to claim the engine.
	for engine.State() != StateRunning {
		time.Sleep(time.Millisecond)
	}

	// A second call while one is in flight returns immediately, no error.
	require.NoError(t, engine.Sync(context.Background()))

	close(gate)
	require.NoError(t, <-done)
	assert.Equal(t, StateSuccess, engine.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "retrying", StateRetrying.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "failed", StateFailed.String())
}
