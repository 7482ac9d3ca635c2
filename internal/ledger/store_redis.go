package ledger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis key per collection, JSON array values. The layout mirrors the
// file store: two fixed keys, whole-collection writes.
const (
	cartKey   = "cartItems"
	ordersKey = "orders"
)

// RedisStore keeps the ledger in Redis. There is a single writer per
// deployment, so read-modify-write on the orders key is safe here.
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) LoadCart(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if err := s.loadKey(ctx, cartKey, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, lines []CartLine) error {
	return s.saveKey(ctx, cartKey, lines)
}

func (s *RedisStore) LoadOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.loadKey(ctx, ordersKey, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *RedisStore) AppendOrder(ctx context.Context, o Order) error {
	var orders []Order
	if err := s.loadKey(ctx, ordersKey, &orders); err != nil {
		return err
	}
	return s.saveKey(ctx, ordersKey, append(orders, o))
}

// loadKey unmarshals the value at key into dst. A missing key leaves
// dst empty; an undecodable value is logged and dropped, matching the
// "corrupt state starts empty" contract of the other backends.
func (s *RedisStore) loadKey(ctx context.Context, key string, dst any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn("stored value corrupt, starting empty", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *RedisStore) saveKey(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}
