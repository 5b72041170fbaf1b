package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisStorage backs the cart slot onto a per-shopper redis key, for
// deployments where carts should survive across devices.
type RedisStorage struct {
	client  *redis.Client
	cartID  string
	baseTTL time.Duration
}

func NewRedisStorage(client *redis.Client, cartID string) *RedisStorage {
	return &RedisStorage{
		client:  client,
		cartID:  cartID,
		baseTTL: 30 * 24 * time.Hour,
	}
}

func (r *RedisStorage) Load() (*State, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	// redis.Nil (no slot yet) and transport errors both hydrate empty.
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if err != nil {
		return nil, false
	}
	return decodeState(data)
}

func (r *RedisStorage) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(), data, r.baseTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) key() string {
	return fmt.Sprintf("%s:%s", StorageKey, r.cartID)
}
