package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"cantinho-algarvio/internal/domain"
)

// fakeSnapshots keeps snapshots in a map and can be told to fail.
type fakeSnapshots struct {
	data    map[string][]byte
	failing bool
	saves   int
	deletes int
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: make(map[string][]byte)}
}

func (f *fakeSnapshots) Load(_ context.Context, session string) ([]byte, error) {
	if f.failing {
		return nil, errors.New("storage down")
	}
	return f.data[session], nil
}

func (f *fakeSnapshots) Save(_ context.Context, session string, data []byte) error {
	if f.failing {
		return errors.New("storage down")
	}
	f.saves++
	f.data[session] = data
	return nil
}

func (f *fakeSnapshots) Delete(_ context.Context, session string) error {
	if f.failing {
		return errors.New("storage down")
	}
	f.deletes++
	delete(f.data, session)
	return nil
}

func bifana() domain.CartItem {
	return domain.CartItem{ID: "d1", Name: "Bifana", Price: 2500}
}

func mufete() domain.CartItem {
	return domain.CartItem{ID: "d2", Name: "Mufete", Price: 6000}
}

func TestCart_AddMergesExistingLine(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())

	store.AddItem(ctx, "s1", bifana(), 1)
	store.AddItem(ctx, "s1", mufete(), 2)
	store.AddItem(ctx, "s1", bifana(), 3)

	items := store.Items(ctx, "s1")
	assert.Len(t, items, 2)
	assert.Equal(t, "d1", items[0].ID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "d2", items[1].ID)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 6, store.TotalItems(ctx, "s1"))
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())

	store.AddItem(ctx, "s1", bifana(), 0)

	items := store.Items(ctx, "s1")
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())

	store.AddItem(ctx, "s1", bifana(), 1)
	store.RemoveItem(ctx, "s1", "nope")

	assert.Len(t, store.Items(ctx, "s1"), 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())
	store.AddItem(ctx, "s1", bifana(), 2)

	store.UpdateQuantity(ctx, "s1", "d1", 5)
	assert.Equal(t, 5, store.Items(ctx, "s1")[0].Quantity)

	// Unknown id is a no-op.
	store.UpdateQuantity(ctx, "s1", "ghost", 7)
	assert.Len(t, store.Items(ctx, "s1"), 1)

	// Zero removes the line.
	store.UpdateQuantity(ctx, "s1", "d1", 0)
	assert.Empty(t, store.Items(ctx, "s1"))
}

func TestCart_QuantitiesNeverDropBelowOne(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())

	store.AddItem(ctx, "s1", bifana(), 2)
	store.AddItem(ctx, "s1", mufete(), 1)
	store.UpdateQuantity(ctx, "s1", "d2", -3)

	total := 0
	for _, item := range store.Items(ctx, "s1") {
		assert.GreaterOrEqual(t, item.Quantity, 1)
		total += item.Quantity
	}
	assert.Equal(t, total, store.TotalItems(ctx, "s1"))
}

func TestCart_Subtotal(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())

	store.AddItem(ctx, "s1", bifana(), 2) // 5000
	store.AddItem(ctx, "s1", mufete(), 1) // 6000

	assert.Equal(t, int64(11000), store.Subtotal(ctx, "s1"))
}

func TestCart_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()

	store := NewStore(snapshots)
	store.AddItem(ctx, "s1", bifana(), 2)
	store.AddItem(ctx, "s1", mufete(), 1)
	before := store.Items(ctx, "s1")

	// A fresh store over the same snapshots simulates a reload.
	reloaded := NewStore(snapshots)
	assert.Equal(t, before, reloaded.Items(ctx, "s1"))
}

func TestCart_CorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()
	snapshots.data["s1"] = []byte("{not json")

	store := NewStore(snapshots)
	assert.Empty(t, store.Items(ctx, "s1"))
	// The corrupt value is discarded, not left to fail again.
	assert.Equal(t, 1, snapshots.deletes)
}

func TestCart_ClearDropsSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()
	store := NewStore(snapshots)

	store.AddItem(ctx, "s1", bifana(), 1)
	store.Clear(ctx, "s1")

	assert.Empty(t, store.Items(ctx, "s1"))
	assert.NotContains(t, snapshots.data, "s1")
}

func TestCart_StorageFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshots()
	store := NewStore(snapshots)

	snapshots.failing = true
	store.AddItem(ctx, "s1", bifana(), 2)

	items := store.Items(ctx, "s1")
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshots())

	store.AddItem(ctx, "s1", bifana(), 1)
	store.AddItem(ctx, "s2", mufete(), 3)

	assert.Equal(t, 1, store.TotalItems(ctx, "s1"))
	assert.Equal(t, 3, store.TotalItems(ctx, "s2"))
}
