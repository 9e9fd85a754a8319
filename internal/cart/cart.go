package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"cantinho-algarvio/internal/domain"
)

// SnapshotStore mirrors a session's cart outside process memory. Load returns
// nil data when no snapshot exists. Implementations must treat all three
// operations as best effort; the in-memory cart stays authoritative.
type SnapshotStore interface {
	Load(ctx context.Context, session string) ([]byte, error)
	Save(ctx context.Context, session string, data []byte) error
	Delete(ctx context.Context, session string) error
}

// Store is the source of truth for what each visitor intends to buy. Every
// mutation synchronously writes the full line-item list through the snapshot
// store so a cart survives reloads; snapshot failures are logged and the
// in-memory state keeps serving the session.
type Store struct {
	mu        sync.Mutex
	carts     map[string][]domain.CartItem
	snapshots SnapshotStore
}

func NewStore(snapshots SnapshotStore) *Store {
	return &Store{
		carts:     make(map[string][]domain.CartItem),
		snapshots: snapshots,
	}
}

// Items returns a copy of the session's current line items.
func (s *Store) Items(ctx context.Context, session string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ensureLoaded(ctx, session)
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

// AddItem merges into an existing line with the same id, or appends a new
// line at the end. Quantity defaults to 1.
func (s *Store) AddItem(ctx context.Context, session string, item domain.CartItem, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ensureLoaded(ctx, session)

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		items = append(items, item)
	}

	s.carts[session] = items
	s.persist(ctx, session, items)
}

// RemoveItem deletes the matching line. Absent ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, session, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ensureLoaded(ctx, session)

	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			s.carts[session] = items
			s.persist(ctx, session, items)
			return
		}
	}
}

// UpdateQuantity overwrites a line's quantity in place. Zero or negative
// quantities remove the line instead; unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, session, id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, session, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ensureLoaded(ctx, session)

	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			s.carts[session] = items
			s.persist(ctx, session, items)
			return
		}
	}
}

// Clear empties the session's cart and drops the persisted snapshot.
func (s *Store) Clear(ctx context.Context, session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[session] = nil
	if err := s.snapshots.Delete(ctx, session); err != nil {
		log.Printf("[cart] failed to drop snapshot for %s: %v", session, err)
	}
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems(ctx context.Context, session string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.ensureLoaded(ctx, session) {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity, in minor currency units.
func (s *Store) Subtotal(ctx context.Context, session string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var subtotal int64
	for _, item := range s.ensureLoaded(ctx, session) {
		subtotal += item.Price * int64(item.Quantity)
	}
	return subtotal
}

// ensureLoaded lazily restores a session's cart from its snapshot. A corrupt
// snapshot is discarded and the session starts empty. Callers hold s.mu.
func (s *Store) ensureLoaded(ctx context.Context, session string) []domain.CartItem {
	if items, ok := s.carts[session]; ok {
		return items
	}

	var items []domain.CartItem
	data, err := s.snapshots.Load(ctx, session)
	switch {
	case err != nil:
		log.Printf("[cart] failed to load snapshot for %s: %v", session, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &items); err != nil {
			log.Printf("[cart] corrupt snapshot for %s, starting empty: %v", session, err)
			items = nil
			if err := s.snapshots.Delete(ctx, session); err != nil {
				log.Printf("[cart] failed to drop corrupt snapshot for %s: %v", session, err)
			}
		}
	}

	s.carts[session] = items
	return items
}

// persist mirrors the full item list. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, session string, items []domain.CartItem) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("[cart] failed to encode cart for %s: %v", session, err)
		return
	}
	if err := s.snapshots.Save(ctx, session, data); err != nil {
		log.Printf("[cart] failed to save snapshot for %s: %v", session, err)
	}
}
