package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Slightly longer than the daily sweep so a crashed worker cannot wedge the
// schedule for more than one cycle.
const defaultLockTTL = 25 * time.Hour

// Lock gates the housekeeping sweep to one worker at a time.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// redisStore defines the Redis operations RedisLock needs.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisLock implements Lock with SETNX and a TTL. Each acquisition writes a
// fresh owner token so Release never deletes a lock another worker took over
// after this one's TTL lapsed.
type RedisLock struct {
	store redisStore
	key   string
	ttl   time.Duration
	token string
}

// NewRedisLock builds a Redis-backed sweep lock. A non-positive ttl falls
// back to the default.
func NewRedisLock(store redisStore, key string, ttl time.Duration) (*RedisLock, error) {
	switch {
	case store == nil:
		return nil, errors.New("redis client required for lock")
	case key == "":
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLock{store: store, key: key, ttl: ttl}, nil
}

// Acquire claims the lock for the TTL and reports whether this worker won it.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	won, err := l.store.SetNX(ctx, l.key, token, l.ttl)
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if won {
		l.token = token
	}
	return won, nil
}

// Release deletes the lock only while this worker's token is still on it.
func (l *RedisLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}

	current, err := l.store.Get(ctx, l.key)
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return fmt.Errorf("read lock owner: %w", err)
	case current != l.token:
		return nil
	}

	if err := l.store.Del(ctx, l.key); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	l.token = ""
	return nil
}
