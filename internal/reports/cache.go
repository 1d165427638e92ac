package reports

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps Redis based caching for report aggregates. A nil Cache or nil
// client degrades to computing every call.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// FetchJSON loads a cached value or populates it using the loader. Any Redis
// failure counts as a miss and the write back is best effort, so an
// unreachable Redis degrades to computing every call instead of erroring.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}

	if c != nil && c.client != nil {
		if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return json.Unmarshal(payload, dest)
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate drops cached aggregates, used after ledger writes in callers
// that want fresh totals immediately.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
