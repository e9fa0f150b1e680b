// Package cache provides read-through caching on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through byte cache. Concurrent misses on one key share a single load.
// A nil redis client disables storage but keeps load coalescing.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

// New creates a Cache backed by rdb, which may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled reports whether values are stored in Redis.
func (c *Cache) Enabled() bool {
	return c.rdb != nil
}

// GetOrLoad returns the cached bytes for key, or calls load and stores its result for ttl.
// Redis failures fall back to load; a store failure after a successful load is ignored.
// The shared load runs detached from the first caller's cancellation, since other
// callers may be waiting on it.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c.rdb != nil {
		if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			return b, nil
		}
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		b, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if c.rdb != nil {
			_ = c.rdb.Set(loadCtx, key, b, ttl).Err()
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete removes keys. It is a no-op without Redis.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// DeleteByPattern deletes all keys matching pattern using SCAN.
func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) error {
	if c.rdb == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

// GetOrLoadJSON is GetOrLoad for JSON-encoded values.
// A cached value that no longer decodes is deleted and reloaded.
func GetOrLoadJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T
	loadBytes := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode cache value %s: %w", key, err)
		}
		return b, nil
	}

	b, err := c.GetOrLoad(ctx, key, ttl, loadBytes)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err == nil {
		return out, nil
	}

	// Delete corrupted cache entry
	_ = c.Delete(ctx, key)
	v, err := load(ctx)
	if err != nil {
		return zero, err
	}
	if b, err := json.Marshal(v); err == nil && c.rdb != nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}
	return v, nil
}
