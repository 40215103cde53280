// Package pager provides a windowed, on-demand loader over the catalog
// cache so an unbounded catalog can be displayed without holding it all
// in memory.
package pager

import (
	"context"
	"sync"

	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/models"
)

const (
	// DefaultPageSize is the number of rows loaded per window page.
	DefaultPageSize = 50
	// DefaultWindowPages bounds how many loaded pages are retained.
	DefaultWindowPages = 6
)

// Store is the slice of the cache the pager consumes.
type Store interface {
	ListCatalog(f db.Filter, limit, offset int) ([]models.CatalogItem, error)
	CountCatalog(f db.Filter) (int64, error)
}

// Pager serves placeholder-aware random access over one filter. Pages
// load on demand; a bounded window of loaded pages is retained in LRU
// order. Changing the filter invalidates the window atomically; rows
// from two different predicates never coexist in one window.
//
// Concurrent sync writes during reads are expected: the store replaces
// rows in place, it never moves them, so a loaded page stays coherent.
type Pager struct {
	store       Store
	pageSize    int
	windowPages int

	mu     sync.Mutex
	filter db.Filter
	gen    uint64
	total  int64 // -1 until counted
	pages  map[int][]models.CatalogItem
	lru    []int
}

// Option tunes a Pager.
type Option func(*Pager)

// WithPageSize sets the rows loaded per page.
func WithPageSize(n int) Option {
	return func(p *Pager) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// WithWindowPages bounds the retained page count.
func WithWindowPages(n int) Option {
	return func(p *Pager) {
		if n > 0 {
			p.windowPages = n
		}
	}
}

// New creates a pager over the store with the given initial filter.
func New(store Store, filter db.Filter, opts ...Option) *Pager {
	p := &Pager{
		store:       store,
		pageSize:    DefaultPageSize,
		windowPages: DefaultWindowPages,
		filter:      filter,
		total:       -1,
		pages:       make(map[int][]models.CatalogItem),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Filter returns the active filter tuple.
func (p *Pager) Filter() db.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// SetFilter swaps the predicate and invalidates the whole window. Loads
// still in flight for the previous filter are discarded on completion.
func (p *Pager) SetFilter(f db.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = f
	p.invalidateLocked()
}

// Invalidate drops the window and cached total, forcing reloads. Called
// after a sync completes to surface fresh rows.
func (p *Pager) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidateLocked()
}

func (p *Pager) invalidateLocked() {
	p.gen++
	p.total = -1
	p.pages = make(map[int][]models.CatalogItem)
	p.lru = nil
}

// Total returns the row count for the active filter, counting on first
// use and caching until invalidation.
func (p *Pager) Total(ctx context.Context) (int64, error) {
	p.mu.Lock()
	if p.total >= 0 {
		total := p.total
		p.mu.Unlock()
		return total, nil
	}
	filter := p.filter
	gen := p.gen
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	total, err := p.store.CountCatalog(filter)
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen == gen {
		p.total = total
	}
	return total, nil
}

// Peek returns the item at index i if its page is resident, nil as a
// placeholder otherwise. Never blocks; callers needing the real row use
// Get.
func (p *Pager) Peek(i int) *models.CatalogItem {
	if i < 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	page, ok := p.pages[i/p.pageSize]
	if !ok {
		return nil
	}
	off := i % p.pageSize
	if off >= len(page) {
		return nil
	}
	item := page[off]
	return &item
}

// Get returns the item at index i, loading its page on demand. Returns
// (nil, nil) for an index beyond the end of the result set. The load is
// cancellable via ctx; cancellation abandons the load without touching
// the window.
func (p *Pager) Get(ctx context.Context, i int) (*models.CatalogItem, error) {
	if i < 0 {
		return nil, nil
	}
	if item := p.Peek(i); item != nil {
		return item, nil
	}

	pageNo := i / p.pageSize
	if err := p.load(ctx, pageNo); err != nil {
		return nil, err
	}
	return p.Peek(i), nil
}

// load fetches one page and installs it unless the window generation
// moved underneath the load, in which case the rows are discarded:
// mixing rows from two predicates would corrupt the window.
func (p *Pager) load(ctx context.Context, pageNo int) error {
	p.mu.Lock()
	if _, ok := p.pages[pageNo]; ok {
		p.mu.Unlock()
		return nil
	}
	filter := p.filter
	gen := p.gen
	pageSize := p.pageSize
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	rows, err := p.store.ListCatalog(filter, pageSize, pageNo*pageSize)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return nil
	}
	// A concurrent load may have installed the page while the lock was
	// released. Installing twice would duplicate the LRU entry and make
	// eviction miscount the window.
	if _, ok := p.pages[pageNo]; ok {
		return nil
	}
	p.installLocked(pageNo, rows)
	return nil
}

// installLocked adds a page and evicts the least recently used pages
// beyond the window bound.
func (p *Pager) installLocked(pageNo int, rows []models.CatalogItem) {
	p.pages[pageNo] = rows
	p.lru = append(p.lru, pageNo)

	for len(p.lru) > p.windowPages {
		evict := p.lru[0]
		p.lru = p.lru[1:]
		delete(p.pages, evict)
	}
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int {
	return p.pageSize
}
