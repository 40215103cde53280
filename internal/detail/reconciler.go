// Package detail reconciles a single catalog entry between the local
// cache and the remote server with a stale-while-revalidate policy.
package detail

import (
	"context"

	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/log"
	"github.com/asteroid-belt/couchpilot/internal/models"
	"github.com/asteroid-belt/couchpilot/internal/remote"
)

// Origin tags each emission so consumers need not infer freshness from
// emission order.
type Origin int

const (
	// OriginCached is the immediately served local row.
	OriginCached Origin = iota
	// OriginRefreshed is the row re-read after a successful remote fetch.
	OriginRefreshed
)

// String returns the origin name.
func (o Origin) String() string {
	if o == OriginRefreshed {
		return "refreshed"
	}
	return "cached"
}

// Emission is one value of the detail sequence. Item is nil when the id
// has never been cached.
type Emission struct {
	Origin Origin
	Item   *models.CatalogItem
}

// Reconciler serves detail views: cached value first, then at most one
// refreshed value after network resolution.
type Reconciler struct {
	db  *db.DB
	svc remote.CatalogService
}

// New creates a reconciler.
func New(database *db.DB, svc remote.CatalogService) *Reconciler {
	return &Reconciler{db: database, svc: svc}
}

// Observe emits the cached row for id immediately, then attempts a
// remote fetch. On success the record is upserted and the now-current
// row emitted a second time; on failure the sequence ends after the
// first emission. The consumer already holds the best-known value and
// never sees an error in place of data.
//
// Cancelling ctx stops deliveries, but a fetch already in flight still
// lands in the cache: cache correctness is independent of the consumer's
// lifetime. The channel is closed when the sequence completes.
func (r *Reconciler) Observe(ctx context.Context, id string) <-chan Emission {
	ch := make(chan Emission, 2)

	go func() {
		defer close(ch)

		cached, err := r.db.GetItem(id)
		if err != nil {
			log.Errorf("read cached detail %s: %v", id, err)
		}
		select {
		case ch <- Emission{Origin: OriginCached, Item: cached}:
		case <-ctx.Done():
			return
		}

		// The fetch and upsert run on a detached context so consumer
		// cancellation cannot leave the cache stale.
		fetchCtx := context.WithoutCancel(ctx)
		fresh, err := r.svc.GetByID(fetchCtx, id)
		if err != nil {
			log.Errorf("refresh detail %s: %v", id, err)
			return
		}

		if err := r.db.UpsertItems([]models.CatalogItem{*fresh}); err != nil {
			log.Errorf("upsert detail %s: %v", id, err)
			return
		}

		current, err := r.db.GetItem(id)
		if err != nil {
			log.Errorf("re-read detail %s: %v", id, err)
			return
		}

		// The channel is buffered, so guard explicitly: a consumer that
		// cancelled after the first emission must not receive the second.
		if ctx.Err() != nil {
			return
		}
		select {
		case ch <- Emission{Origin: OriginRefreshed, Item: current}:
		case <-ctx.Done():
		}
	}()

	return ch
}
