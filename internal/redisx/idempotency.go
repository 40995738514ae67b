package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers checkout results per Idempotency-Key.
//
// Reserve claims a key with a short pending marker. Save replaces the marker
// with the final result for the configured TTL. Release drops a claim whose
// request failed before anything was created remotely, so the client can retry.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Reserve returns true when the caller now owns the key
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, key, pendingMarker, TTLIdempotencyPending).Result()
}

// Load returns the saved result. pending is true while the owner is still working.
func (s *IdempotencyStore) Load(ctx context.Context, key string) (result []byte, pending bool, err error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if string(val) == pendingMarker {
		return nil, true, nil
	}
	return val, false, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, result []byte) error {
	return s.rdb.Set(ctx, key, result, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
