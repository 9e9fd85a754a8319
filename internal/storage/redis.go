package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cantinho-algarvio/internal/domain"
)

// RedisStore backs the per-session device mirror: cart snapshots, the
// best-effort order history, favorites, event dedup markers and the dish
// popularity leaderboard.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

// Cart snapshots (cart.SnapshotStore).

func cartKey(session string) string { return "cart:" + session }

func (s *RedisStore) Load(ctx context.Context, session string) ([]byte, error) {
	data, err := s.Client.Get(ctx, cartKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (s *RedisStore) Save(ctx context.Context, session string, data []byte) error {
	return s.Client.Set(ctx, cartKey(session), data, s.TTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, session string) error {
	return s.Client.Del(ctx, cartKey(session)).Err()
}

// Order mirror: an append-only per-session list. Not deduplicated against
// the database copy.

func ordersKey(session string) string { return "orders:" + session }

func (s *RedisStore) AppendOrder(ctx context.Context, session string, order domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	pipe := s.Client.Pipeline()
	pipe.RPush(ctx, ordersKey(session), data)
	pipe.Expire(ctx, ordersKey(session), s.TTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) SessionOrders(ctx context.Context, session string) ([]domain.Order, error) {
	entries, err := s.Client.LRange(ctx, ordersKey(session), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(entries))
	for _, entry := range entries {
		var order domain.Order
		if err := json.Unmarshal([]byte(entry), &order); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Favorites.

func favoritesKey(session string) string { return "favorites:" + session }

func (s *RedisStore) AddFavorite(ctx context.Context, session, dishID string) error {
	pipe := s.Client.Pipeline()
	pipe.SAdd(ctx, favoritesKey(session), dishID)
	pipe.Expire(ctx, favoritesKey(session), s.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) RemoveFavorite(ctx context.Context, session, dishID string) error {
	return s.Client.SRem(ctx, favoritesKey(session), dishID).Err()
}

func (s *RedisStore) ListFavorites(ctx context.Context, session string) ([]string, error) {
	return s.Client.SMembers(ctx, favoritesKey(session)).Result()
}

// Event dedup markers. The change feed is at-least-once; consumers mark an
// event id once its side effects landed so redeliveries can be skipped.

func (s *RedisStore) EventMarkerKey(eventID string) string {
	return "event:" + eventID
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	res, err := s.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (s *RedisStore) SetMarker(ctx context.Context, key string) error {
	return s.Client.Set(ctx, key, "1", s.TTL).Err()
}

// Dish popularity leaderboard, incremented per ordered item.

const topDishesKey = "reports:top-dishes"

func (s *RedisStore) RecordDishSales(ctx context.Context, items []domain.CartItem) error {
	pipe := s.Client.Pipeline()
	for _, item := range items {
		pipe.ZIncrBy(ctx, topDishesKey, float64(item.Quantity), item.ID)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// TopDishes returns dish ids with their sale counts, best sellers first.
func (s *RedisStore) TopDishes(ctx context.Context, limit int) (map[string]float64, []string, error) {
	result, err := s.Client.ZRevRangeWithScores(ctx, topDishesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, nil, err
	}

	scores := make(map[string]float64, len(result))
	order := make([]string, 0, len(result))
	for _, member := range result {
		id, ok := member.Member.(string)
		if !ok {
			continue
		}
		scores[id] = member.Score
		order = append(order, id)
	}
	return scores, order, nil
}
