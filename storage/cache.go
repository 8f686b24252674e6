package storage

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"threadwell-api/domain"
)

type backend interface {
	Get(ctx context.Context) (*domain.BoardState, bool, error)
	Set(ctx context.Context, state *domain.BoardState) error
	Close() error
}

// Cache wraps a snapshot store with Redis-backed caching for reads. Redis
// failures never fail a request; the base store stays authoritative.
type Cache struct {
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (*domain.BoardState, bool, error) {
	if state, ok := c.loadFromCache(ctx); ok {
		return state, true, nil
	}

	state, ok, err := c.base.Get(ctx)
	if err != nil || !ok {
		return nil, ok, err
	}

	c.store(ctx, state)
	return state, true, nil
}

// Set writes through to the base store and evicts the cached snapshot so
// the next read repopulates it from the authoritative copy.
func (c *Cache) Set(ctx context.Context, state *domain.BoardState) error {
	if err := c.base.Set(ctx, state); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *Cache) Close() error {
	err := c.base.Close()
	if c.redis != nil {
		if cerr := c.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (c *Cache) loadFromCache(ctx context.Context) (*domain.BoardState, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors drop the stale key and fall back to the base store.
			_ = c.redis.Del(ctx, snapshotCacheKey).Err()
		}
		return nil, false
	}
	var state domain.BoardState
	if err := sonic.Unmarshal(data, &state); err != nil {
		_ = c.redis.Del(ctx, snapshotCacheKey).Err()
		return nil, false
	}
	return &state, true
}

func (c *Cache) store(ctx context.Context, state *domain.BoardState) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := sonic.Marshal(state)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, snapshotCacheKey, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, snapshotCacheKey).Result()
}

const snapshotCacheKey = "board:" + snapshotKey
