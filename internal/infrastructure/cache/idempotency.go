package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryIdempotencyStore keeps used keys in memory with a TTL. Good
// enough for a single-instance deployment; use the Redis store when
// running more than one replica.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	keys map[string]time.Time
	now  func() time.Time
}

// NewMemoryIdempotencyStore creates an in-memory store
func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		ttl:  ttl,
		keys: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Reserve marks the key as used. Returns false if the key is already
// reserved and not yet expired.
func (s *MemoryIdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiry, ok := s.keys[key]; ok && now.Before(expiry) {
		return false, nil
	}
	// Opportunistic cleanup of expired keys keeps the map bounded
	for k, expiry := range s.keys {
		if !now.Before(expiry) {
			delete(s.keys, k)
		}
	}
	s.keys[key] = now.Add(s.ttl)
	return true, nil
}

// Release frees a reservation so the key can be reserved again
func (s *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

// RedisIdempotencyStore backs the reservation with Redis SET NX, so
// multiple instances share one view of used keys.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyStore creates a Redis-backed store
func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

// Reserve marks the key as used via SET NX
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, "idempotency:"+key, "1", s.ttl).Result()
}

// Release frees a reservation so the key can be reserved again
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, "idempotency:"+key).Err()
}
