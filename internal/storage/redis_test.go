package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"cantinho-algarvio/internal/domain"
)

func newTestRedis(t *testing.T) *RedisStore {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour)
}

func TestCartSnapshotRoundtrip(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	// Missing snapshots read back as nil without error.
	data, err := store.Load(ctx, "s1")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, store.Save(ctx, "s1", []byte(`[{"id":"d1"}]`)))
	data, err = store.Load(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"d1"}]`), data)

	assert.NoError(t, store.Delete(ctx, "s1"))
	data, err = store.Load(ctx, "s1")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestOrderMirrorKeepsInsertionOrder(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.AppendOrder(ctx, "s1", domain.Order{ID: "o1", Total: 4000}))
	assert.NoError(t, store.AppendOrder(ctx, "s1", domain.Order{ID: "o2", Total: 9500}))

	orders, err := store.SessionOrders(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)

	// Sessions never see each other's history.
	other, err := store.SessionOrders(ctx, "s2")
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestFavorites(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.AddFavorite(ctx, "s1", "d1"))
	assert.NoError(t, store.AddFavorite(ctx, "s1", "d2"))
	assert.NoError(t, store.AddFavorite(ctx, "s1", "d1"))

	favorites, err := store.ListFavorites(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, favorites, 2)

	assert.NoError(t, store.RemoveFavorite(ctx, "s1", "d1"))
	favorites, err = store.ListFavorites(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"d2"}, favorites)
}

func TestEventMarkers(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	key := store.EventMarkerKey("evt-1")
	assert.Equal(t, "event:evt-1", key)

	seen, err := store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, seen)

	assert.NoError(t, store.SetMarker(ctx, key))
	seen, err = store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.True(t, seen)
}

func TestTopDishesLeaderboard(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.RecordDishSales(ctx, []domain.CartItem{
		{ID: "d1", Quantity: 2},
		{ID: "d2", Quantity: 5},
	}))
	assert.NoError(t, store.RecordDishSales(ctx, []domain.CartItem{
		{ID: "d1", Quantity: 1},
	}))

	scores, order, err := store.TopDishes(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"d2", "d1"}, order)
	assert.Equal(t, 5.0, scores["d2"])
	assert.Equal(t, 3.0, scores["d1"])
}
