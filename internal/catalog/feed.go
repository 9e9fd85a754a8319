package catalog

import (
	"context"
	"log"
	"sync"

	"cantinho-algarvio/internal/domain"
)

// DishSource fetches one page of the catalog matching a query.
// It returns the page items and the total match count.
type DishSource interface {
	FetchPage(ctx context.Context, q Query) ([]domain.Dish, int, error)
}

// Feed is an incrementally loadable view over the catalog. Pages accumulate
// as the visitor scrolls; any filter change throws the accumulated pages away
// and starts over from page zero. The feed is session scoped and holds no
// durable state.
type Feed struct {
	mu       sync.Mutex
	source   DishSource
	fallback DishSource

	query   Query
	items   []domain.Dish
	total   int
	hasMore bool
	loading bool
	loaded  bool
	gen     int
}

func NewFeed(source DishSource) *Feed {
	return &Feed{
		source:   source,
		fallback: &sampleSource{},
		query:    Query{}.Normalized(),
	}
}

// Items returns a copy of the accumulated dishes.
func (f *Feed) Items() []domain.Dish {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Dish, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// SetFilters replaces the active filters and page size, refetching the first
// page when either actually changed. The page cursor of the incoming query is
// ignored; accumulated pages are sized to the old window, so a page size
// change resets too.
func (f *Feed) SetFilters(ctx context.Context, q Query) error {
	q = q.Normalized()
	f.mu.Lock()
	if f.loaded && f.query.SameFilters(q) && f.query.PageSize == q.PageSize {
		f.mu.Unlock()
		return nil
	}
	f.query.Search = q.Search
	f.query.Category = q.Category
	f.query.Featured = q.Featured
	f.query.Popular = q.Popular
	f.query.PageSize = q.PageSize
	f.mu.Unlock()
	return f.Reset(ctx)
}

// Reset clears the accumulated items, rewinds the cursor and fetches a fresh
// first page. A fetch still in flight for the old view is discarded when it
// lands.
func (f *Feed) Reset(ctx context.Context) error {
	f.mu.Lock()
	f.items = nil
	f.total = 0
	f.query.Page = 0
	f.hasMore = false
	f.loaded = false
	f.loading = true
	f.gen++
	gen := f.gen
	q := f.query
	f.mu.Unlock()
	return f.fetch(ctx, q, gen, true)
}

// LoadMore appends the next page. It is a no-op while a fetch is in flight
// or when the feed is exhausted.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || (f.loaded && !f.hasMore) {
		f.mu.Unlock()
		return nil
	}
	if f.loaded {
		f.query.Page++
	}
	firstPage := !f.loaded
	f.loading = true
	gen := f.gen
	q := f.query
	f.mu.Unlock()
	return f.fetch(ctx, q, gen, firstPage)
}

// fetch runs the page read outside the lock. Callers set loading and snapshot
// the query and generation under the lock; a generation mismatch on return
// means a Reset replaced the view and this result must be thrown away.
func (f *Feed) fetch(ctx context.Context, q Query, gen int, firstPage bool) error {
	dishes, total, err := f.source.FetchPage(ctx, q)
	if err != nil && firstPage && f.fallback != nil {
		// Never leave the storefront empty: serve the built-in samples.
		log.Printf("[catalog] first page fetch failed, using fallback dataset: %v", err)
		dishes, total, err = f.fallback.FetchPage(ctx, q)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// The Reset that bumped the generation owns the loading flag now.
		return nil
	}
	f.loading = false
	if err != nil {
		// A later page failed: keep what we have and stop paginating.
		f.hasMore = false
		return err
	}

	f.items = append(f.items, dishes...)
	f.total = total
	f.hasMore = len(dishes) == q.PageSize && (q.Page+1)*q.PageSize < total
	f.loaded = true
	return nil
}

// sampleSource serves the built-in dataset directly.
type sampleSource struct{}

func (s *sampleSource) FetchPage(_ context.Context, q Query) ([]domain.Dish, int, error) {
	matched := filterSample(q)
	return pageOf(matched, q), len(matched), nil
}
