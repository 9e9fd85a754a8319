package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"cantinho-algarvio/internal/domain"
)

// fakeSource serves a fixed number of dishes and counts fetches.
type fakeSource struct {
	dishes  []domain.Dish
	fetches int
	failing bool
}

func newFakeSource(n int) *fakeSource {
	s := &fakeSource{}
	for i := 0; i < n; i++ {
		s.dishes = append(s.dishes, domain.Dish{
			ID:   fmt.Sprintf("d%d", i),
			Name: fmt.Sprintf("Prato %d", i),
		})
	}
	return s
}

func (s *fakeSource) FetchPage(_ context.Context, q Query) ([]domain.Dish, int, error) {
	s.fetches++
	if s.failing {
		return nil, 0, errors.New("backend unreachable")
	}
	return pageOf(s.dishes, q), len(s.dishes), nil
}

func TestFeed_LoadMoreAccumulatesPages(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	feed := NewFeed(source)

	assert.NoError(t, feed.LoadMore(ctx))
	assert.Len(t, feed.Items(), 12)
	assert.True(t, feed.HasMore())
	assert.Equal(t, 30, feed.Total())

	assert.NoError(t, feed.LoadMore(ctx))
	items := feed.Items()
	assert.Len(t, items, 24)
	// Appended, not replaced: first page still leads.
	assert.Equal(t, "d0", items[0].ID)
	assert.Equal(t, "d12", items[12].ID)
	assert.True(t, feed.HasMore())

	assert.NoError(t, feed.LoadMore(ctx))
	assert.Len(t, feed.Items(), 30)
	assert.False(t, feed.HasMore())
}

func TestFeed_LoadMoreWhenExhaustedIsNoop(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(5)
	feed := NewFeed(source)

	assert.NoError(t, feed.LoadMore(ctx))
	assert.False(t, feed.HasMore())
	fetches := source.fetches

	assert.NoError(t, feed.LoadMore(ctx))
	assert.Len(t, feed.Items(), 5)
	assert.Equal(t, fetches, source.fetches, "exhausted feed must not hit the source")
}

func TestFeed_HasMoreRequiresFullPageAndRemainder(t *testing.T) {
	ctx := context.Background()
	// Exactly one full page: page is full but nothing remains.
	source := newFakeSource(12)
	feed := NewFeed(source)

	assert.NoError(t, feed.LoadMore(ctx))
	assert.Len(t, feed.Items(), 12)
	assert.False(t, feed.HasMore())
}

func TestFeed_FilterChangeResets(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	feed := NewFeed(source)

	assert.NoError(t, feed.LoadMore(ctx))
	assert.NoError(t, feed.LoadMore(ctx))
	assert.Len(t, feed.Items(), 24)

	assert.NoError(t, feed.SetFilters(ctx, Query{Search: "Prato 1"}))
	items := feed.Items()
	assert.LessOrEqual(t, len(items), 12, "stale pages must be dropped")
	for _, d := range items {
		assert.Contains(t, d.Name, "Prato")
	}
}

func TestFeed_UnchangedFiltersDoNotRefetch(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	feed := NewFeed(source)

	assert.NoError(t, feed.SetFilters(ctx, Query{Category: "pratos"}))
	fetches := source.fetches

	assert.NoError(t, feed.SetFilters(ctx, Query{Category: "pratos"}))
	assert.Equal(t, fetches, source.fetches)
}

func TestFeed_HonorsRequestedPageSize(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	feed := NewFeed(source)

	assert.NoError(t, feed.SetFilters(ctx, Query{PageSize: 5}))
	assert.Len(t, feed.Items(), 5)
	assert.True(t, feed.HasMore())

	assert.NoError(t, feed.LoadMore(ctx))
	items := feed.Items()
	assert.Len(t, items, 10)
	assert.Equal(t, "d5", items[5].ID)
}

func TestFeed_PageSizeChangeResets(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	feed := NewFeed(source)

	assert.NoError(t, feed.SetFilters(ctx, Query{PageSize: 5}))
	assert.NoError(t, feed.LoadMore(ctx))
	assert.Len(t, feed.Items(), 10)

	// Accumulated pages are sized to the old window, so they are dropped.
	assert.NoError(t, feed.SetFilters(ctx, Query{PageSize: 12}))
	assert.Len(t, feed.Items(), 12)
}

// gatedSource blocks its first fetch until released, so a test can hold a
// page read in flight while other feed operations run.
type gatedSource struct {
	inner   *fakeSource
	gate    chan struct{}
	started chan struct{}
	calls   int32
}

func (s *gatedSource) FetchPage(ctx context.Context, q Query) ([]domain.Dish, int, error) {
	if atomic.AddInt32(&s.calls, 1) == 1 {
		close(s.started)
		<-s.gate
	}
	return s.inner.FetchPage(ctx, q)
}

func TestFeed_ResetDiscardsInFlightFetch(t *testing.T) {
	ctx := context.Background()
	source := &gatedSource{
		inner:   newFakeSource(30),
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	feed := NewFeed(source)

	done := make(chan error, 1)
	go func() { done <- feed.LoadMore(ctx) }()
	<-source.started

	// The reset lands while the first fetch is still in flight; the stale
	// result must not be appended to the fresh view.
	assert.NoError(t, feed.Reset(ctx))
	assert.Len(t, feed.Items(), 12)

	close(source.gate)
	assert.NoError(t, <-done)
	assert.Len(t, feed.Items(), 12, "stale in-flight page must be discarded")
	assert.False(t, feed.Loading())
}

func TestFeed_FirstPageFailureFallsBackToSamples(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	source.failing = true
	feed := NewFeed(source)

	assert.NoError(t, feed.LoadMore(ctx))
	items := feed.Items()
	assert.NotEmpty(t, items, "the storefront must never be empty")
	assert.Equal(t, "sample-1", items[0].ID)
}

func TestFeed_LaterPageFailureKeepsItems(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)
	feed := NewFeed(source)

	assert.NoError(t, feed.LoadMore(ctx))
	loaded := feed.Items()

	source.failing = true
	err := feed.LoadMore(ctx)
	assert.Error(t, err)
	assert.Equal(t, loaded, feed.Items(), "accumulated items survive a failed page")
	assert.False(t, feed.HasMore(), "pagination stops after a failed page")
}

func TestQuery_Normalized(t *testing.T) {
	q := Query{Search: "  muamba  ", Page: -2, PageSize: 0}.Normalized()
	assert.Equal(t, "muamba", q.Search)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, 0, q.Offset())
}

func TestQuery_SameFilters(t *testing.T) {
	a := Query{Search: "x", Category: "pratos", Page: 0}
	b := Query{Search: "x", Category: "pratos", Page: 5}
	assert.True(t, a.SameFilters(b))

	b.Popular = true
	assert.False(t, a.SameFilters(b))
}
